package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// envelope is embedded in every response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), envelope{Success: false, Message: errorMessage(err)})
}

// writeFailure answers with a body that carries more than the message, such
// as a partial upload report or a deploy result.
func writeFailure(w http.ResponseWriter, err error, body any) {
	writeJSON(w, statusFor(err), body)
}

func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrCollision):
		return http.StatusConflict
	default:
		logger.Errorf("Request failed: %v", err)
		return http.StatusInternalServerError
	}
}

// errorMessage is what the UI shows: validation details without the sentinel
// prefix, or the provider's own message.
func errorMessage(err error) string {
	if errors.Is(err, entities.ErrValidation) {
		msg := err.Error()
		for {
			trimmed := strings.TrimPrefix(msg, entities.ErrValidation.Error()+": ")
			if trimmed == msg {
				break
			}
			msg = trimmed
		}
		return capitalize(msg)
	}
	return entities.ProviderMessage(err)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("%w: request body is not valid JSON", entities.ErrValidation)
	}
	return nil
}
