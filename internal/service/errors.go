package service

import "errors"

var (
	// ErrNotFBAQuote is returned when a quote is not flagged as an FBA shipment.
	ErrNotFBAQuote = errors.New("quote is not marked as an FBA shipment")

	// ErrUnsupportedScope is returned for scopes other than Port-to-Door and Door-to-Door.
	ErrUnsupportedScope = errors.New("shipment scope must be Port-to-Door or Door-to-Door")

	// ErrPickupChargesRequired is returned when a Door-to-Door quote has no pickup charge.
	ErrPickupChargesRequired = errors.New("pickup charges are required for Door-to-Door shipment scope")

	// ErrReferenceDataUnavailable is returned when the reference tables cannot be loaded.
	ErrReferenceDataUnavailable = errors.New("reference data unavailable")

	// ErrRepositoryNotConfigured is returned by operations that need MongoDB when it is disabled.
	ErrRepositoryNotConfigured = errors.New("repository not configured")

	// ErrInvalidLane wraps every transport-rate validation failure.
	ErrInvalidLane = errors.New("invalid lane")
)

// PickupChargesRequiredMessage is the user-facing text for ErrPickupChargesRequired.
const PickupChargesRequiredMessage = "Pickup charges are required for Door-to-Door shipment scope."
