//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Run("should return the defaults when no file is given", func(t *testing.T) {
		// given
		t.Setenv("PORT", "")
		t.Setenv("FOLIO_LISTEN_ADDR", "")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, ":3000", settings.Server.ListenAddr)
		assert.Equal(t, int64(50<<20), settings.Server.MaxBodyBytes)
		assert.Equal(t, "main", settings.GitHub.DefaultBranch)
		assert.Equal(t, 30*time.Second, settings.HTTP.Timeout)
		assert.Equal(t, 4, settings.Upload.Concurrency)
	})

	t.Run("should merge the file over the defaults", func(t *testing.T) {
		// given
		t.Setenv("PORT", "")
		t.Setenv("FOLIO_LISTEN_ADDR", "")
		path := writeConfig(t, `
server:
  listen_addr: ":8080"
  allowed_origins: ["https://folio.example.com"]
netlify:
  api_url: "http://localhost:9999/api/v1"
http:
  timeout: 5s
upload:
  concurrency: 8
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, ":8080", settings.Server.ListenAddr)
		assert.Equal(t, []string{"https://folio.example.com"}, settings.Server.AllowedOrigins)
		assert.Equal(t, "http://localhost:9999/api/v1", settings.Netlify.APIURL)
		assert.Equal(t, "https://api.vercel.com", settings.Vercel.APIURL)
		assert.Equal(t, 5*time.Second, settings.HTTP.Timeout)
		assert.Equal(t, 8, settings.Upload.Concurrency)
	})

	t.Run("should expand environment references in tokens", func(t *testing.T) {
		// given
		t.Setenv("MY_NETLIFY", "nf-secret")
		path := writeConfig(t, "netlify:\n  token: \"${MY_NETLIFY}\"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "nf-secret", settings.Netlify.Token)
		assert.Equal(t, "nf-secret", settings.TokenFor(entities.PlatformNetlify))
	})

	t.Run("should use PORT when no listen address is set", func(t *testing.T) {
		// given
		t.Setenv("FOLIO_LISTEN_ADDR", "")
		t.Setenv("PORT", "4000")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, ":4000", settings.Server.ListenAddr)
	})

	t.Run("should pick tokens from the conventional variables", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "gh-env")
		t.Setenv("VERCEL_TOKEN", "vc-env")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gh-env", settings.TokenFor(entities.PlatformPages))
		assert.Equal(t, "vc-env", settings.TokenFor(entities.PlatformVercel))
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			message string
		}{
			{"should reject a non http API URL", "github:\n  api_url: ftp://x\n", "github.api_url"},
			{"should reject zero concurrency", "upload:\n  concurrency: 0\n", "upload.concurrency"},
			{"should reject a negative timeout", "http:\n  timeout: -1s\n", "http.timeout"},
			{"should reject an empty branch", "github:\n  default_branch: \"\"\n", "github.default_branch"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// given
				path := writeConfig(t, tt.content)

				// when
				_, err := entities.NewSettings(path)

				// then
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.message)
			})
		}
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "nope.yaml"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("should read the token from a file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("file-secret\n"), 0o600))

		// when
		token := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-secret", token)
	})

	t.Run("should return an inline token unchanged", func(t *testing.T) {
		assert.Equal(t, "ghp_inline", entities.ResolveToken("ghp_inline"))
	})

	t.Run("should resolve an unset variable to empty", func(t *testing.T) {
		// given
		t.Setenv("FOLIO_UNSET_FOR_TEST", "")

		// when
		token := entities.ResolveToken("${FOLIO_UNSET_FOR_TEST}")

		// then
		assert.Empty(t, token)
	})
}
