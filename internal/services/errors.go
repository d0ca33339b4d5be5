package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds carried in the JSON error envelope.
const (
	KindValidation    = "validation"
	KindUnauthorized  = "unauthorized"
	KindForbidden     = "forbidden"
	KindNotFound      = "not_found"
	KindConflict      = "conflict"
	KindConfiguration = "configuration"
	KindProvider      = "provider"
	KindInternal      = "internal"
)

type ServiceError struct {
	Status  int
	Kind    string
	Message string
	Field   string
	// Err is the underlying cause, logged but never sent to clients.
	Err error
}

func (e ServiceError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

// ErrNotFoundField reports a referenced row that does not exist.
func ErrNotFoundField(field, msg string) error {
	return ServiceError{Status: http.StatusNotFound, Kind: KindNotFound, Message: msg, Field: field}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

// ErrValidation reports an invalid or missing input field.
func ErrValidation(field, msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Kind: KindValidation, Message: msg, Field: field}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: http.StatusForbidden, Kind: KindForbidden, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Kind: KindUnauthorized, Message: msg}
}

func ErrConflict(field, msg string) error {
	return ServiceError{Status: http.StatusConflict, Kind: KindConflict, Message: msg, Field: field}
}

func ErrConfiguration(msg string) error {
	return ServiceError{Status: http.StatusInternalServerError, Kind: KindConfiguration, Message: msg}
}

// ErrProvider reports a failed call to an upstream provider such as the mail API.
func ErrProvider(msg string, cause error) error {
	return ServiceError{Status: http.StatusBadGateway, Kind: KindProvider, Message: msg, Err: cause}
}

// AsServiceError unwraps err into a ServiceError when one is in the chain.
func AsServiceError(err error) (ServiceError, bool) {
	var serr ServiceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return ServiceError{}, false
}

// IsNotFound reports whether err is a not-found service error.
func IsNotFound(err error) bool {
	serr, ok := AsServiceError(err)
	return ok && serr.Kind == KindNotFound
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
