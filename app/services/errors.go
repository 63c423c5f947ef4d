package services

import "errors"

var (
	// ErrValidation wraps input that breaks a model invariant
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the caller may not mutate the record
	ErrForbidden = errors.New("only the creator can delete blogs")

	// ErrInvalidCredentials is returned for an unknown username or wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
)
