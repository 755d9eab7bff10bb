package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInvalidQuery       = "error.invalid_query"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyServiceUnavailable = "error.service_unavailable"

	// ErrKeyQuoteNotFound is returned when a quote id is unknown.
	ErrKeyQuoteNotFound = "error.quote_not_found"
	// ErrKeyNotFBAQuote is returned for quotes not flagged as FBA shipments.
	ErrKeyNotFBAQuote = "error.not_fba_quote"
	// ErrKeyUnsupportedScope is returned for scopes other than Port-to-Door and Door-to-Door.
	ErrKeyUnsupportedScope = "error.unsupported_scope"
	// ErrKeyPickupRequired is returned for Door-to-Door quotes without pickup charges.
	ErrKeyPickupRequired = "error.pickup_required"
	// ErrKeyInvalidLane covers transport lane validation problems.
	ErrKeyInvalidLane = "error.invalid_lane"
)

// Success message keys.
const (
	SuccessKeyRatesComputed  = "success.rates_computed"
	SuccessKeyTransportRates = "success.transport_rates"
)
