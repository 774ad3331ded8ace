package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// TokenResolver picks the provider token of a request. A token in the body
// wins, then the X-Provider-Token header or "token" query parameter. The
// server's own tokens are only used when the API itself requires a key.
type TokenResolver struct {
	settings *entities.Settings
}

// NewTokenResolver creates a TokenResolver.
func NewTokenResolver(settings *entities.Settings) *TokenResolver {
	return &TokenResolver{settings: settings}
}

func (t *TokenResolver) Resolve(r *http.Request, fromBody string, platform entities.Platform) string {
	if fromBody != "" {
		return fromBody
	}
	if header := r.Header.Get(headerProviderToken); header != "" {
		return header
	}
	if query := r.URL.Query().Get("token"); query != "" {
		return query
	}
	return t.Configured(fromBody, platform)
}

// Configured falls back to the configured token of platform when the body
// did not carry one.
func (t *TokenResolver) Configured(fromBody string, platform entities.Platform) string {
	if fromBody != "" {
		return fromBody
	}
	if t.settings.Server.APIToken == "" {
		return ""
	}
	return t.settings.TokenFor(platform)
}

// missingFields takes name/value pairs and reports every empty value, in order.
func missingFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing required fields: %s", entities.ErrValidation, strings.Join(missing, ", "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// present is a placeholder value for missingFields when a non-string field is set.
func present(ok bool) string {
	if ok {
		return "set"
	}
	return ""
}
