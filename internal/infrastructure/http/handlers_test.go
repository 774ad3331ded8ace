//go:build unit

package http_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

func TestPortfolioHandlerGenerate(t *testing.T) {
	t.Parallel()

	t.Run("should return the rendered files", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.render.Files = entities.FileSet{"index.html": "<html></html>"}

		// when
		rec, body := a.do(http.MethodPost, "/api/portfolio/generate",
			`{"portfolioData":{"personalInfo":{"name":"Jane Doe","title":"Engineer","email":"jane@example.com"}}}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Portfolio generated successfully", body["message"])
		assert.Equal(t, map[string]any{"index.html": "<html></html>"}, body["files"])
		assert.Equal(t, "Jane Doe", a.render.LastData.PersonalInfo.Name)
	})

	t.Run("should reject a body without portfolio data", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, body := a.do(http.MethodPost, "/api/portfolio/generate", `{}`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing required fields: portfolioData", body["message"])
		assert.Zero(t, a.render.ExecuteCallCount)
	})

	t.Run("should reject a body that is not JSON", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, body := a.do(http.MethodPost, "/api/portfolio/generate", `{not json`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Request body is not valid JSON", body["message"])
	})

	t.Run("should relay validation errors of the renderer", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.render.ExecuteErr = fmt.Errorf("%w: missing required fields: personalInfo.title", entities.ErrValidation)

		// when
		rec, body := a.do(http.MethodPost, "/api/portfolio/generate", `{"portfolioData":{}}`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing required fields: personalInfo.title", body["message"])
	})
}

func TestGitHubHandler(t *testing.T) {
	t.Parallel()

	t.Run("should create the repository and report the uploaded files", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.publish.Output = commands.PublishOutput{
			Repository: entities.NewRepositoryHandle("jane", "site", "main"),
			Upload: entities.UploadReport{Outcomes: []entities.FileOutcome{
				{Path: "index.html", Action: entities.UploadCreated},
				{Path: "styles.css", Action: entities.UploadUpdated},
			}},
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/github/create-repo",
			`{"username":"jane","repoName":"site","githubToken":"gh","portfolioFiles":{"index.html":"a","styles.css":"b"}}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://github.com/jane/site", body["repoUrl"])
		assert.Equal(t, "https://jane.github.io/site", body["siteUrl"])
		assert.InDelta(t, 2, body["filesUploaded"], 0)
		assert.Equal(t, "gh", a.publish.LastInput.Token)
		assert.Equal(t, "jane", a.publish.LastInput.Owner)
		assert.False(t, a.publish.LastInput.ExistingOnly)
	})

	t.Run("should report the files that landed when the upload fails", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.publish.ExecuteErr = fmt.Errorf("%w: %w", entities.ErrUpload,
			&entities.APIError{Provider: "github", StatusCode: http.StatusConflict, Message: "sha mismatch"})
		a.publish.Output = commands.PublishOutput{Upload: entities.UploadReport{Outcomes: []entities.FileOutcome{
			{Path: "index.html", Action: entities.UploadCreated},
			{Path: "styles.css", Action: entities.UploadFailed, Error: "sha mismatch"},
		}}}

		// when
		rec, body := a.do(http.MethodPost, "/api/github/update-files",
			`{"owner":"jane","repoName":"site","token":"gh","fileSet":{"index.html":"a","styles.css":"b"}}`)

		// then
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "sha mismatch", body["message"])
		assert.InDelta(t, 1, body["filesUpdated"], 0)
		assert.NotNil(t, body["upload"])
		assert.True(t, a.publish.LastInput.ExistingOnly)
	})

	t.Run("should list every missing field", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, body := a.do(http.MethodPost, "/api/github/create-repo", `{"username":"jane"}`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing required fields: repoName, portfolioFiles, githubToken", body["message"])
	})

	t.Run("should enable GitHub Pages", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.launch.Target = entities.DeploymentTarget{
			LiveURL:  "https://jane.github.io/site/",
			AdminURL: "https://github.com/jane/site/settings/pages",
			State:    "building",
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/github/setup-pages",
			`{"username":"jane","repoName":"site","githubToken":"gh"}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://jane.github.io/site/", body["siteUrl"])
		assert.Equal(t, "building", body["state"])
		assert.Equal(t, entities.PlatformPages, a.launch.LastInput.Platform)
		assert.Equal(t, "jane/site", a.launch.LastInput.Repository.FullName())
	})

	t.Run("should check a token passed in the header", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.publish.Login = "jane"

		// when
		rec, body := a.do(http.MethodGet, "/api/github/check-token", "", "X-Provider-Token", "gh")

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jane", body["login"])
		assert.Equal(t, "gh", a.publish.LastToken)
	})
}

func TestPlatformHandler(t *testing.T) {
	t.Parallel()

	t.Run("should deploy a repository to Netlify", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.launch.Target = entities.DeploymentTarget{
			SiteName: "jane-site",
			SiteID:   "site-1",
			LiveURL:  "https://jane-site.netlify.app",
			AdminURL: "https://app.netlify.com/sites/jane-site",
			DeployID: "dep-1",
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/netlify/deploy",
			`{"repoUrl":"https://github.com/jane/site.git","siteName":"jane-site","netlifyToken":"nf"}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://jane-site.netlify.app", body["siteUrl"])
		assert.Equal(t, "site-1", body["siteId"])
		assert.Equal(t, "dep-1", body["deployId"])
		assert.Equal(t, entities.PlatformNetlify, a.launch.LastInput.Platform)
		assert.Equal(t, "jane/site", a.launch.LastInput.Repository.FullName())
		assert.Equal(t, "jane-site", a.launch.LastInput.SiteName)
		assert.Equal(t, "nf", a.launch.LastInput.Token)
	})

	t.Run("should deploy a repository to Vercel", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.launch.Target = entities.DeploymentTarget{
			SiteName:  "jane-site",
			SiteID:    "prj_1",
			LiveURL:   "https://jane-site.vercel.app",
			DeployURL: "https://jane-site-abc.vercel.app",
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/vercel/deploy",
			`{"repoUrl":"git@github.com:jane/site.git","projectName":"jane-site","vercelToken":"vc"}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "prj_1", body["projectId"])
		assert.Equal(t, "https://jane-site-abc.vercel.app", body["deploymentUrl"])
		assert.Equal(t, entities.PlatformVercel, a.launch.LastInput.Platform)
	})

	t.Run("should reject a repository URL it cannot parse", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, _ := a.do(http.MethodPost, "/api/netlify/deploy",
			`{"repoUrl":"https://gitlab.com/jane/site","siteName":"s","netlifyToken":"nf"}`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, a.launch.ExecuteCallCount)
	})

	t.Run("should use the configured token only behind an API key", func(t *testing.T) {
		t.Parallel()

		// given
		open := newAPI(func(s *entities.Settings) { s.Netlify.Token = "configured" })
		guarded := newAPI(func(s *entities.Settings) {
			s.Netlify.Token = "configured"
			s.Server.APIToken = "secret"
		})
		payload := `{"repoUrl":"jane/site","siteName":"s"}`

		// when
		openRec, openBody := open.do(http.MethodPost, "/api/netlify/deploy", payload)
		guardedRec, _ := guarded.do(http.MethodPost, "/api/netlify/deploy", payload, "X-API-Key", "secret")

		// then
		assert.Equal(t, http.StatusBadRequest, openRec.Code)
		assert.Equal(t, "Missing required fields: netlifyToken", openBody["message"])
		assert.Equal(t, http.StatusOK, guardedRec.Code)
		assert.Equal(t, "configured", guarded.launch.LastInput.Token)
	})

	t.Run("should pass a Pages site id with a slash", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.status.Status = entities.DeployStatus{Platform: entities.PlatformPages, State: "built"}

		// when
		rec, body := a.do(http.MethodGet, "/api/pages/status/jane/site?token=gh", "")

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jane/site", a.status.LastSiteID)
		assert.Equal(t, "gh", a.status.LastToken)
		assert.Equal(t, entities.PlatformPages, a.status.LastPlatform)
		status, ok := body["status"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "built", status["state"])
	})

	t.Run("should reject an unknown platform", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, body := a.do(http.MethodGet, "/api/heroku/status/site-1?token=t", "")

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `Unknown platform: "heroku"`, body["message"])
	})

	t.Run("should map a missing site to 404", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.status.ExecuteErr = fmt.Errorf("%w: site site-1", entities.ErrNotFound)

		// when
		rec, _ := a.do(http.MethodGet, "/api/netlify/status/site-1", "", "X-Provider-Token", "nf")

		// then
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeployHandler(t *testing.T) {
	t.Parallel()

	t.Run("should run the deployment and return its result", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.deploy.Result = entities.DeployResult{
			ID:      "d1",
			Success: true,
			Step:    entities.StepSucceeded,
			SiteURL: "https://jane-site.netlify.app",
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/deploy",
			`{"username":"jane","repoName":"site","platform":"netlify","siteName":"jane-site",
			  "portfolioData":{"personalInfo":{"name":"Jane"}},"githubToken":"gh","platformToken":"nf"}`)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "d1", body["id"])
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Portfolio deployed successfully", body["message"])
		input := a.deploy.LastInput
		assert.Equal(t, "jane", input.Owner)
		assert.Equal(t, entities.PlatformNetlify, input.Platform)
		assert.Equal(t, "gh", input.GitHubToken)
		assert.Equal(t, "nf", input.PlatformToken)
		require.NotNil(t, input.Portfolio)
	})

	t.Run("should return the failed step with the error", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.deploy.ExecuteErr = fmt.Errorf("%w: quota exceeded", entities.ErrPlatform)
		a.deploy.Result = entities.DeployResult{
			ID:           "d2",
			Step:         entities.StepFailed,
			FailedStep:   entities.StepDeployingToPlatform,
			RepoURL:      "https://github.com/jane/site",
			ErrorMessage: "Netlify: quota exceeded",
		}

		// when
		rec, body := a.do(http.MethodPost, "/api/deploy",
			`{"owner":"jane","repoName":"site","platform":"netlify","fileSet":{"index.html":"x"}}`)

		// then
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "deploying_to_platform", body["failedStep"])
		assert.Equal(t, "https://github.com/jane/site", body["repoUrl"])
		assert.Equal(t, "Netlify: quota exceeded", body["message"])
	})

	t.Run("should reject an unknown platform before deploying", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()

		// when
		rec, _ := a.do(http.MethodPost, "/api/deploy",
			`{"owner":"jane","repoName":"site","platform":"heroku","fileSet":{"index.html":"x"}}`)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, a.deploy.ExecuteCallCount)
	})

	t.Run("should list deployments of an owner", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.history.Records = []entities.DeploymentRecord{{
			ID:        "d1",
			Owner:     "jane",
			Platform:  entities.PlatformPages,
			Step:      entities.StepSucceeded,
			Success:   true,
			StartedAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		}}

		// when
		rec, body := a.do(http.MethodGet, "/api/deployments?owner=jane&limit=5", "")

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jane", a.history.LastOwner)
		assert.Equal(t, 5, a.history.LastLimit)
		deployments, ok := body["deployments"].([]any)
		require.True(t, ok)
		assert.Len(t, deployments, 1)
	})

	t.Run("should return a single deployment or 404", func(t *testing.T) {
		t.Parallel()

		// given
		a := newAPI()
		a.history.Records = []entities.DeploymentRecord{{ID: "d1", Owner: "jane"}}

		// when
		found, foundBody := a.do(http.MethodGet, "/api/deployments/d1", "")
		missing, _ := a.do(http.MethodGet, "/api/deployments/d9", "")

		// then
		assert.Equal(t, http.StatusOK, found.Code)
		deployment, ok := foundBody["deployment"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "d1", deployment["id"])
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})
}
