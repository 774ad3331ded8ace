//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/folio/test/infrastructure/repositorydoubles"
)

type deployFixture struct {
	source   *doubles.SpySourceRepository
	platform *doubles.SpyPlatformRepository
	renderer *doubles.StubRendererRepository
	history  *doubles.SpyHistoryRepository
	cmd      *commands.DeployCommand
}

func newDeployFixture(platform entities.Platform) *deployFixture {
	f := &deployFixture{
		source:   &doubles.SpySourceRepository{},
		platform: &doubles.SpyPlatformRepository{Platform: platform},
		renderer: &doubles.StubRendererRepository{},
		history:  &doubles.SpyHistoryRepository{},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.cmd = commands.NewDeployCommand(
		newPublishCommand(f.source, 2),
		newLaunchCommand(f.platform),
		f.renderer,
		f.history,
		func() time.Time { return now },
		func() string { return "dep-1" },
	)
	return f
}

func validDeployInput(platform entities.Platform) commands.DeployInput {
	return commands.DeployInput{
		Owner:         "jane",
		RepoName:      "jane-portfolio",
		Platform:      platform,
		Files:         entitybuilders.NewFileSetBuilder().WithSite().BuildFileSet(),
		GitHubToken:   "gh-tok",
		PlatformToken: "pf-tok",
	}
}

func TestDeployCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run every step and record the success", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)

		// when
		result, err := f.cmd.Execute(context.Background(), validDeployInput(entities.PlatformNetlify))

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "dep-1", result.ID)
		assert.Equal(t, entities.StepSucceeded, result.Step)
		assert.Equal(t, "https://github.com/jane/jane-portfolio", result.RepoURL)
		assert.Equal(t, "https://jane-portfolio.example.app", result.SiteURL)
		assert.True(t, result.Upload.Complete())
		assert.Equal(t, []string{"pf-tok"}, f.platform.Tokens)

		record := f.history.Last()
		assert.Equal(t, "dep-1", record.ID)
		assert.True(t, record.Success)
		assert.Equal(t, "site-jane-portfolio", record.SiteID)
		assert.Equal(t, entities.StepSucceeded, record.Step)
	})

	t.Run("should render portfolio data when no files are given", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		input := validDeployInput(entities.PlatformNetlify)
		input.Files = nil
		data := entitybuilders.NewPortfolioBuilder().WithName("Jane Doe").BuildPortfolio()
		input.Portfolio = &data

		// when
		result, err := f.cmd.Execute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.Len(t, f.renderer.Rendered, 1)
		assert.Equal(t, "#667eea", f.renderer.Rendered[0].Theme.PrimaryColor)
		assert.Equal(t, []string{"index.html"}, f.source.PutPaths())
	})

	t.Run("should fall back to the GitHub token for Pages", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformPages)
		input := validDeployInput(entities.PlatformPages)
		input.PlatformToken = ""

		// when
		_, err := f.cmd.Execute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"gh-tok"}, f.platform.Tokens)
	})

	t.Run("should stop in the repository step with its label", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		f.source.EnsureErr = &entities.APIError{Provider: "github", StatusCode: 401, Message: "Bad credentials"}

		// when
		result, err := f.cmd.Execute(context.Background(), validDeployInput(entities.PlatformNetlify))

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryCreation)
		assert.False(t, result.Success)
		assert.Equal(t, entities.StepFailed, result.Step)
		assert.Equal(t, entities.StepCreatingRepo, result.FailedStep)
		assert.Equal(t, "Failed to create GitHub repository: Bad credentials", result.ErrorMessage)
		assert.Empty(t, f.source.Puts)
		assert.Empty(t, f.platform.CreatedNames)
	})

	t.Run("should keep the partial upload report when an upload fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		f.source.PutFileErrs = map[string]error{
			"styles.css": &entities.APIError{Provider: "github", StatusCode: 422, Message: "Invalid request"},
		}

		// when
		result, err := f.cmd.Execute(context.Background(), validDeployInput(entities.PlatformNetlify))

		// then
		require.ErrorIs(t, err, entities.ErrUpload)
		assert.Equal(t, entities.StepUploadingFiles, result.FailedStep)
		assert.Equal(t, "Failed to upload files: Invalid request", result.ErrorMessage)
		require.NotNil(t, result.Upload)
		assert.Len(t, result.Upload.Failed(), 1)
		assert.Empty(t, f.platform.CreatedNames)
	})

	t.Run("should label platform failures with the platform name", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformVercel)
		f.platform.CreateErrs = []error{
			&entities.APIError{Provider: "vercel", StatusCode: 403, Message: "Not authorized"},
		}

		// when
		result, err := f.cmd.Execute(context.Background(), validDeployInput(entities.PlatformVercel))

		// then
		require.ErrorIs(t, err, entities.ErrPlatform)
		assert.Equal(t, entities.StepDeployingToPlatform, result.FailedStep)
		assert.Equal(t, "Failed to deploy to Vercel: Not authorized", result.ErrorMessage)
		assert.Equal(t, "https://github.com/jane/jane-portfolio", result.RepoURL)

		record := f.history.Last()
		assert.False(t, record.Success)
		assert.Equal(t, entities.StepFailed, record.Step)
		assert.Equal(t, result.ErrorMessage, record.ErrorMessage)
	})

	t.Run("should record invalid requests without calling any provider", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		input := validDeployInput(entities.PlatformNetlify)
		input.PlatformToken = ""

		// when
		result, err := f.cmd.Execute(context.Background(), input)

		// then
		require.ErrorIs(t, err, entities.ErrMissingToken)
		assert.Equal(t, entities.StepIdle, result.FailedStep)
		assert.Equal(t, "Invalid deployment request: validation failed: token is required for Netlify", result.ErrorMessage)
		assert.Zero(t, f.source.EnsureCalls)
		assert.Len(t, f.history.Saved, 1)
	})

	t.Run("should reject an unknown platform", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		input := validDeployInput("heroku")

		// when
		_, err := f.cmd.Execute(context.Background(), input)

		// then
		require.ErrorIs(t, err, entities.ErrUnknownPlatform)
	})

	t.Run("should succeed even when the history cannot be written", func(t *testing.T) {
		t.Parallel()

		// given
		f := newDeployFixture(entities.PlatformNetlify)
		f.history.SaveErr = assert.AnError

		// when
		result, err := f.cmd.Execute(context.Background(), validDeployInput(entities.PlatformNetlify))

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}
