//go:build unit

package netlify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/httpclient"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/netlify"
)

func newRepository(t *testing.T, handler http.Handler) *netlify.NetlifyPlatformRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := entities.DefaultSettings()
	settings.HTTP.RetryMax = 0
	settings.Netlify.APIURL = server.URL + "/api/v1"
	return netlify.NewNetlifyPlatformRepository(httpclient.NewFactory(settings), settings)
}

func TestNetlifyPlatformRepository(t *testing.T) {
	t.Parallel()

	handle := entities.NewRepositoryHandle("jane", "jane-portfolio", "main")

	t.Run("should create a static site bound to the repository", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = w.Write([]byte(`{"id":"s1","name":"jane","ssl_url":"https://jane.netlify.app","admin_url":"https://app.netlify.com/sites/jane"}`))
		})
		repo := newRepository(t, mux)

		// when
		target, err := repo.CreateSite(context.Background(), handle, "jane", "tok")

		// then
		require.NoError(t, err)
		assert.Equal(t, "s1", target.SiteID)
		assert.Equal(t, "https://jane.netlify.app", target.LiveURL)
		assert.Equal(t, "jane", body["name"])
		repoBody := body["repo"].(map[string]any)
		assert.Equal(t, "jane/jane-portfolio", repoBody["repo"])
		assert.Equal(t, "main", repoBody["branch"])
		assert.Equal(t, "github", repoBody["provider"])
		build := body["build_settings"].(map[string]any)
		assert.Equal(t, `echo "Static site - no build required"`, build["cmd"])
		assert.Equal(t, "/", build["dir"])
	})

	t.Run("should report a taken name as a collision", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":{"subdomain":["must be unique"]},"message":"Name has already been taken"}`))
		})
		repo := newRepository(t, mux)

		// when
		_, err := repo.CreateSite(context.Background(), handle, "jane", "tok")

		// then
		require.ErrorIs(t, err, entities.ErrCollision)
	})

	t.Run("should report a conflict as a collision", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"site name already exists"}`))
		})
		repo := newRepository(t, mux)

		// when
		_, err := repo.CreateSite(context.Background(), handle, "jane", "tok")

		// then
		require.ErrorIs(t, err, entities.ErrCollision)
		assert.Equal(t, "site name already exists", entities.ProviderMessage(err))
	})

	t.Run("should not treat other validation errors as collisions", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Invalid repo"}`))
		})
		repo := newRepository(t, mux)

		// when
		_, err := repo.CreateSite(context.Background(), handle, "jane", "tok")

		// then
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrCollision)
		assert.Equal(t, "Invalid repo", entities.ProviderMessage(err))
	})

	t.Run("should link the repository and trigger a build", func(t *testing.T) {
		t.Parallel()

		// given
		var linked map[string]map[string]string
		mux := http.NewServeMux()
		mux.HandleFunc("PATCH /api/v1/sites/s1", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&linked)
			_, _ = w.Write([]byte(`{}`))
		})
		mux.HandleFunc("POST /api/v1/sites/s1/builds", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"b1","deploy_id":"d1"}`))
		})
		repo := newRepository(t, mux)
		target := entities.DeploymentTarget{SiteID: "s1", SiteName: "jane"}

		// when
		linkErr := repo.LinkRepository(context.Background(), target, handle, "main", "tok")
		built, buildErr := repo.TriggerBuild(context.Background(), target, handle, "tok")

		// then
		require.NoError(t, linkErr)
		require.NoError(t, buildErr)
		assert.Equal(t, "jane/jane-portfolio", linked["repo"]["repo"])
		assert.Equal(t, "main", linked["repo"]["branch"])
		assert.Equal(t, "d1", built.DeployID)
	})

	t.Run("should combine the site and its latest deploy into a status", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/sites/s1", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"s1","name":"jane","state":"current"}`))
		})
		mux.HandleFunc("GET /api/v1/sites/s1/deploys", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			_, _ = w.Write([]byte(`[{"id":"d1","state":"building","deploy_url":"https://d1--jane.netlify.app","created_at":"2026-03-01T12:00:00Z"}]`))
		})
		repo := newRepository(t, mux)

		// when
		status, err := repo.GetStatus(context.Background(), entities.DeploymentTarget{SiteID: "s1"}, "tok")

		// then
		require.NoError(t, err)
		assert.Equal(t, "building", status.State)
		assert.Equal(t, "d1", status.DeployID)
		assert.Equal(t, "https://jane.netlify.app", status.SiteURL)
		assert.Equal(t, "https://app.netlify.com/sites/jane", status.AdminURL)
		assert.Equal(t, 2026, status.CreatedAt.Year())
	})

	t.Run("should report an unknown site as not found", func(t *testing.T) {
		t.Parallel()

		// given
		repo := newRepository(t, http.NotFoundHandler())

		// when
		_, err := repo.GetStatus(context.Background(), entities.DeploymentTarget{SiteID: "nope"}, "tok")

		// then
		require.ErrorIs(t, err, entities.ErrNotFound)
	})
}
