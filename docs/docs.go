// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/quotes/{id}/rates": {
            "post": {
                "description": "Loads a stored FBA quote, prices every destination for the selected consoles and saves the quotation ledger when nothing failed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Rate a stored quote",
                "parameters": [
                    {"type": "string", "description": "Quote id", "name": "id", "in": "path", "required": true},
                    {"description": "Console and service mode overrides", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/RateQuoteRequest"}},
                    {"type": "string", "description": "Replays the stored response for a retried rating", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Landed costs and summary", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Invalid request or pickup charges missing", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Quote not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Not an FBA quote or unsupported scope", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/quotes/{id}/quotations": {
            "get": {
                "description": "Returns the ledger rows saved by the last successful rating of the quote.",
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "List saved quotations",
                "parameters": [
                    {"type": "string", "description": "Quote id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Quotation rows", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/rates": {
            "post": {
                "description": "Prices a shipment given in full in the body. Nothing is saved.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Compute landed costs",
                "parameters": [
                    {"description": "Shipment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ComputeRatesRequest"}}
                ],
                "responses": {
                    "200": {"description": "Landed costs and summary", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/transport-rates": {
            "post": {
                "description": "Collects every LTL, FTL, FTL53 and drayage candidate for a US lane.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transport"],
                "summary": "Price a transport lane",
                "parameters": [
                    {"description": "Lane and cargo", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransportRatesRequest"}}
                ],
                "responses": {
                    "200": {"description": "Candidates per mode", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Invalid lane or cargo", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/audit-events": {
            "get": {
                "description": "Queries the audit trail, newest first.",
                "produces": ["application/json"],
                "tags": ["Audit"],
                "summary": "List audit events",
                "parameters": [
                    {"type": "string", "name": "stream", "in": "query"},
                    {"type": "string", "name": "request_id", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "start_time", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "end_time", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Events", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Service is alive"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready"},
                    "503": {"description": "Service is not ready"}
                }
            }
        }
    },
    "definitions": {
        "RateQuoteRequest": {
            "type": "object",
            "properties": {
                "own_console": {"type": "boolean"},
                "coload": {"type": "boolean"},
                "ltl": {"type": "boolean"},
                "ftl": {"type": "boolean"},
                "ftl53": {"type": "boolean"},
                "drayage": {"type": "boolean"},
                "pickup_charges": {"type": "number", "example": 250}
            }
        },
        "CargoItem": {
            "type": "object",
            "properties": {
                "package_type": {"type": "string", "example": "Box"},
                "quantity": {"type": "integer", "example": 100},
                "weight_per_unit": {"type": "number"},
                "length": {"type": "number"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "total_weight": {"type": "number", "example": 1500},
                "total_volume": {"type": "number", "example": 10}
            }
        },
        "Destination": {
            "type": "object",
            "required": ["destination", "cargo"],
            "properties": {
                "destination": {"type": "string", "example": "ONT8 - Moreno Valley"},
                "cargo": {"type": "array", "items": {"$ref": "#/definitions/CargoItem"}}
            }
        },
        "ComputeRatesRequest": {
            "type": "object",
            "required": ["origin", "destinations"],
            "properties": {
                "origin": {"type": "string", "example": "Nhava Sheva (INNSA)"},
                "destinations": {"type": "array", "items": {"$ref": "#/definitions/Destination"}},
                "console_type": {"type": "string", "example": "Coload"},
                "service_modes": {"type": "array", "items": {"type": "string"}},
                "occ": {"type": "boolean"},
                "dcc": {"type": "boolean"},
                "shipment_scope": {"type": "string", "example": "Port-to-Door"},
                "pickup_charges": {"type": "number"},
                "as_of": {"type": "string", "example": "2026-03-02"}
            }
        },
        "TransportRatesRequest": {
            "type": "object",
            "required": ["origin", "destination"],
            "properties": {
                "origin": {"type": "string", "example": "07001, Avenel, New Jersey, NJ, United States"},
                "destination": {"type": "string", "example": "30303, Atlanta, Georgia, GA, United States"},
                "cargo": {"type": "array", "items": {"$ref": "#/definitions/CargoItem"}},
                "totals": {
                    "type": "object",
                    "properties": {
                        "quantity": {"type": "integer"},
                        "weight_kg": {"type": "number"},
                        "cbm": {"type": "number"}
                    }
                },
                "fba": {"type": "boolean"},
                "liftgate": {"type": "boolean"},
                "residential": {"type": "boolean"}
            }
        },
        "SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_request"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    },
    "tags": [
        {"description": "Landed-cost quoting", "name": "Quotes"},
        {"description": "Ad hoc lane pricing", "name": "Transport"},
        {"description": "Audit trail queries", "name": "Audit"},
        {"description": "Health check endpoints", "name": "Health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FBA Quote Service API",
	Description:      "Landed-cost quoting for FBA freight: ocean linehaul, consolidation and US last-mile delivery.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
