package service

import (
	"errors"
	"fmt"
)

// Domain errors shared by the content, profile and auth services.
var (
	ErrNotFound           = errors.New("document not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError reports a document that failed decoding or field validation.
// Its message is safe to return to the client.
type ValidationError struct {
	Collection string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Collection, e.Reason)
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
