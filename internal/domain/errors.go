package domain

import "errors"

var (
	ErrNotFound         = errors.New("equipment not found")
	ErrMissingID        = errors.New("id is required")
	ErrInvalidEquipment = errors.New("invalid equipment")
	ErrInvalidStatus    = errors.New("invalid equipment status")
	ErrInvalidDates     = errors.New("invalid rental dates")
	ErrInvalidRate      = errors.New("rental rate must not be negative")
	ErrCustomerRequired = errors.New("customer is required")
	ErrActionNotAllowed = errors.New("action not allowed for current status")
	ErrUnknownAction    = errors.New("unknown action")
	// ErrInvalidRecord marks stored data the application cannot represent.
	ErrInvalidRecord = errors.New("invalid stored equipment record")
)
