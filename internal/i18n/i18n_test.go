//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Singleton(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{"english", ErrKeyQuoteNotFound, "en", "Quote not found or invalid ID"},
		{"portuguese", ErrKeyInvalidRequest, "pt", "Requisição inválida"},
		{"dutch", ErrKeyInvalidRequest, "nl", "Ongeldig verzoek"},
		{"empty locale", ErrKeyPickupRequired, "", "Pickup charges are required for Door-to-Door shipment scope."},
		{"unsupported locale", ErrKeyNotFound, "fr", "Not found"},
		{"unknown key", "error.nope", "pt", "error.nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestCatalog_Complete(t *testing.T) {
	for locale, msgs := range catalog {
		for key := range catalog[DefaultLocale] {
			assert.Contains(t, msgs, key, "locale %s missing %s", locale, key)
		}
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"no header", "", "en"},
		{"portuguese region", "pt-BR,pt;q=0.9", "pt"},
		{"dutch underscore", "nl_NL", "nl"},
		{"upper case", "NL", "nl"},
		{"unsupported", "de-DE,de;q=0.9", "en"},
		{"quality only first", "fr;q=0.9,pt", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}
			assert.Equal(t, tt.expected, GetLocale(c))
		})
	}
}
