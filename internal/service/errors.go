package service

import "errors"

// Sentinel errors mapped to HTTP statuses at the transport boundary.
// Services wrap them with fmt.Errorf("%w: detail", ...).
var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)
