package repository

import "errors"

var (
	// ErrQuoteNotFound is returned when no quote has the requested id.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInvalidQuoteID is returned for ids that are not valid object ids.
	ErrInvalidQuoteID = errors.New("invalid quote id")
	// ErrInvalidConsoleType is returned for tariff rows that are neither Own Console nor Coload.
	ErrInvalidConsoleType = errors.New("invalid tariff console type")
)
