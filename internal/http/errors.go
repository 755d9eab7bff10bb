package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/fba-quote-service/internal/circuitbreaker"
	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/i18n"
	"github.com/guttosm/fba-quote-service/internal/repository"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// errorMapping ties a sentinel error to a status and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// serviceErrors is evaluated top-down; the first match wins.
var serviceErrors = []errorMapping{
	{repository.ErrQuoteNotFound, http.StatusNotFound, i18n.ErrKeyQuoteNotFound},
	{repository.ErrInvalidQuoteID, http.StatusNotFound, i18n.ErrKeyQuoteNotFound},
	{service.ErrNotFBAQuote, http.StatusUnprocessableEntity, i18n.ErrKeyNotFBAQuote},
	{service.ErrUnsupportedScope, http.StatusUnprocessableEntity, i18n.ErrKeyUnsupportedScope},
	{service.ErrPickupChargesRequired, http.StatusBadRequest, i18n.ErrKeyPickupRequired},
	{service.ErrInvalidLane, http.StatusBadRequest, i18n.ErrKeyInvalidLane},
	{service.ErrRepositoryNotConfigured, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{service.ErrReferenceDataUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
}

// statusForError returns the HTTP status and message key for err.
// Unknown errors are internal errors.
func statusForError(err error) (int, string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return m.status, m.key
		}
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}

// validationDetails reports the field of a dto validation error.
func validationDetails(err error) map[string]string {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return map[string]string{verr.Field: verr.Message}
	}
	return nil
}
