package service

import "errors"

// Error kinds surfaced by the services. Handlers map these to HTTP status
// codes with errors.Is; everything else is treated as an internal error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden: document does not belong to user")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
