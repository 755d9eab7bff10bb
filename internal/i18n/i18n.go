// Package i18n translates user-facing messages. English, Portuguese and
// Dutch are supported; unknown locales and keys fall back to English.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when no supported locale is requested.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the header GetLocale reads.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator returns a translator with the built-in catalog.
func NewTranslator() *Translator {
	return &Translator{messages: catalog}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale. A missing locale or key
// falls back to English; a key unknown everywhere is returned unchanged.
func (t *Translator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first language tag of Accept-Language, reduced to its
// base language, if it is supported.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}
	first := strings.TrimSpace(strings.SplitN(strings.SplitN(header, ",", 2)[0], ";", 2)[0])
	if idx := strings.IndexAny(first, "-_"); idx > 0 {
		first = first[:idx]
	}
	lang := strings.ToLower(first)
	if GetTranslator().Supports(lang) {
		return lang
	}
	return DefaultLocale
}

var catalog = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:     "Invalid request",
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyInvalidQuery:       "Invalid query parameters",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyTimeout:            "The request took too long to complete",
		ErrKeyServiceUnavailable: "A required backing service is unavailable",
		ErrKeyQuoteNotFound:      "Quote not found or invalid ID",
		ErrKeyNotFBAQuote:        "The quotation is not marked as an FBA shipment",
		ErrKeyUnsupportedScope:   "Shipment scope must be either Port-to-Door or Door-to-Door",
		ErrKeyPickupRequired:     "Pickup charges are required for Door-to-Door shipment scope.",
		ErrKeyInvalidLane:        "Invalid transport lane",
		SuccessKeyRatesComputed:  "Rates computed",
		SuccessKeyTransportRates: "Transport rates retrieved",
	},
	"pt": {
		ErrKeyInvalidRequest:     "Requisição inválida",
		ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
		ErrKeyInvalidQuery:       "Parâmetros de consulta inválidos",
		ErrKeyInternalError:      "Ocorreu um erro inesperado",
		ErrKeyNotFound:           "Não encontrado",
		ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:            "A requisição demorou demais para ser concluída",
		ErrKeyServiceUnavailable: "Um serviço necessário está indisponível",
		ErrKeyQuoteNotFound:      "Cotação não encontrada ou ID inválido",
		ErrKeyNotFBAQuote:        "A cotação não está marcada como envio FBA",
		ErrKeyUnsupportedScope:   "O escopo do envio deve ser Port-to-Door ou Door-to-Door",
		ErrKeyPickupRequired:     "Taxas de coleta são obrigatórias para o escopo Door-to-Door.",
		ErrKeyInvalidLane:        "Rota de transporte inválida",
		SuccessKeyRatesComputed:  "Tarifas calculadas",
		SuccessKeyTransportRates: "Tarifas de transporte obtidas",
	},
	"nl": {
		ErrKeyInvalidRequest:     "Ongeldig verzoek",
		ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
		ErrKeyInvalidQuery:       "Ongeldige queryparameters",
		ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
		ErrKeyNotFound:           "Niet gevonden",
		ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyTimeout:            "Het verzoek duurde te lang",
		ErrKeyServiceUnavailable: "Een vereiste dienst is niet beschikbaar",
		ErrKeyQuoteNotFound:      "Offerte niet gevonden of ongeldig ID",
		ErrKeyNotFBAQuote:        "De offerte is niet gemarkeerd als FBA-zending",
		ErrKeyUnsupportedScope:   "Zendingsbereik moet Port-to-Door of Door-to-Door zijn",
		ErrKeyPickupRequired:     "Ophaalkosten zijn verplicht voor Door-to-Door zendingen.",
		ErrKeyInvalidLane:        "Ongeldige transportroute",
		SuccessKeyRatesComputed:  "Tarieven berekend",
		SuccessKeyTransportRates: "Transporttarieven opgehaald",
	},
}
