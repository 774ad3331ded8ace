package httpclient

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// Factory builds HTTP clients for the provider APIs. Each client carries one
// caller token; tokens are never shared between requests.
type Factory struct {
	settings entities.HTTPSettings
}

// NewFactory creates a Factory from the HTTP settings.
func NewFactory(settings *entities.Settings) *Factory {
	return &Factory{settings: settings.HTTP}
}

// UserAgent is the User-Agent header sent to every provider.
func (f *Factory) UserAgent() string { return f.settings.UserAgent }

// Client returns a client that retries transient failures and, when token is
// not empty, authenticates every request with it as a bearer token.
func (f *Factory) Client(token string) *http.Client {
	retrying := retryablehttp.NewClient()
	retrying.RetryMax = f.settings.RetryMax
	if f.settings.RetryWaitMin > 0 {
		retrying.RetryWaitMin = f.settings.RetryWaitMin
	}
	if f.settings.RetryWaitMax > 0 {
		retrying.RetryWaitMax = f.settings.RetryWaitMax
	}
	retrying.CheckRetry = retryPolicy
	retrying.Logger = leveledLogger{}
	// hand the last response back so callers can read the provider's message
	retrying.ErrorHandler = retryablehttp.PassthroughErrorHandler

	var transport http.RoundTripper = &retryablehttp.RoundTripper{Client: retrying}
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	return &http.Client{
		Timeout:   f.settings.Timeout,
		Transport: transport,
	}
}

// retryPolicy is retryablehttp's default policy, except that a POST answered
// with a server error is not sent again: the create may have landed, and a
// second call would report the name as taken.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil && resp != nil && resp.Request != nil &&
		resp.Request.Method == http.MethodPost && resp.StatusCode >= http.StatusInternalServerError {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// leveledLogger routes retryablehttp logs to logrus.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Error(msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Warn(msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Trace(msg)
}

func fields(keysAndValues []any) logger.Fields {
	f := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			f[key] = keysAndValues[i+1]
		}
	}
	return f
}
