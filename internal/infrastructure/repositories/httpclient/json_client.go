package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

const maxErrorBody = 64 << 10

// JSONClient calls a JSON REST API rooted at baseURL.
type JSONClient struct {
	provider   string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewJSONClient creates a client for provider's API at baseURL.
func NewJSONClient(provider, baseURL, userAgent string, httpClient *http.Client) *JSONClient {
	return &JSONClient{
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Do sends in (when not nil) as the JSON body and decodes a 2xx answer into
// out (when not nil). Any other status is returned as *entities.APIError.
func (c *JSONClient) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.provider, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.provider, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &entities.APIError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// errorMessage pulls the human message out of the error shapes used by the
// hosting APIs: {"message"}, {"error":"..."} and {"error":{"message"}}.
func errorMessage(raw []byte) string {
	var shaped struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &shaped); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if shaped.Message != "" {
		return shaped.Message
	}
	if len(shaped.Error) > 0 {
		var text string
		if json.Unmarshal(shaped.Error, &text) == nil {
			return text
		}
		var nested struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(shaped.Error, &nested) == nil {
			if nested.Message != "" {
				return nested.Message
			}
			return nested.Code
		}
	}
	return strings.TrimSpace(string(raw))
}
