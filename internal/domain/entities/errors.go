package entities

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrCollision          = errors.New("name already taken")
	ErrRepositoryCreation = errors.New("repository creation failed")
	ErrUpload             = errors.New("file upload failed")
	ErrPlatform           = errors.New("platform request failed")
	ErrNotFound           = errors.New("not found")

	ErrUnknownPlatform = fmt.Errorf("%w: unknown platform", ErrValidation)
	ErrMissingToken    = fmt.Errorf("%w: token is required", ErrValidation)
)

// APIError is a non-2xx answer from a remote provider API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API responded with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API responded with status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// ProviderMessage returns the message reported by the remote provider, or the
// plain error text when the error did not come from a provider response.
func ProviderMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// StatusCode returns the remote HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsCollision reports whether a hosting platform rejected a create call
// because the name is in use: a 409, or a 422 whose message says the name has
// already been taken or already exists.
func IsCollision(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusConflict:
		return true
	case http.StatusUnprocessableEntity:
		message := strings.ToLower(apiErr.Message)
		return strings.Contains(message, "already been taken") || strings.Contains(message, "already exists")
	default:
		return false
	}
}
