package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

const (
	labelCreateRepository = "Failed to create GitHub repository"
	labelUploadFiles      = "Failed to upload files"
	labelInvalidRequest   = "Invalid deployment request"
)

// Deploy is the interface for the end-to-end deployment pipeline.
type Deploy interface {
	Execute(ctx context.Context, input DeployInput) (entities.DeployResult, error)
}

// DeployInput holds everything a single deployment attempt needs. When Files
// is empty the Portfolio is rendered first.
type DeployInput struct {
	Owner         string
	RepoName      string
	Platform      entities.Platform
	SiteName      string
	Files         entities.FileSet
	Portfolio     *entities.PortfolioData
	GitHubToken   string
	PlatformToken string
}

// DeployCommand orchestrates one deployment attempt:
// ensure repository -> upload files -> provision the site and start a build.
type DeployCommand struct {
	publish  Publish
	launch   Launch
	renderer repositories.RendererRepository
	history  repositories.HistoryRepository
	now      entities.Clock
	newID    entities.IDGenerator
}

// NewDeployCommand creates a new DeployCommand.
func NewDeployCommand(
	publish Publish,
	launch Launch,
	renderer repositories.RendererRepository,
	history repositories.HistoryRepository,
	now entities.Clock,
	newID entities.IDGenerator,
) *DeployCommand {
	return &DeployCommand{
		publish:  publish,
		launch:   launch,
		renderer: renderer,
		history:  history,
		now:      now,
		newID:    newID,
	}
}

// Execute runs the pipeline. The result always describes the attempt,
// including the step it ended in; the returned error is the cause of a
// failed attempt and can be inspected with errors.Is.
func (it *DeployCommand) Execute(ctx context.Context, input DeployInput) (entities.DeployResult, error) {
	attempt := entities.NewAttempt(it.newID(), it.now())
	result := entities.DeployResult{ID: attempt.ID, Step: attempt.Step}
	defer func() { it.record(ctx, input, attempt, result) }()

	files, err := it.prepare(input)
	if err != nil {
		return it.fail(&result, attempt, labelInvalidRequest, err)
	}

	// creating the repository
	it.advance(attempt, entities.StepCreatingRepo)
	handle, err := it.publish.EnsureRepository(ctx, input.Owner, input.RepoName, input.GitHubToken)
	if err != nil {
		return it.fail(&result, attempt, labelCreateRepository, err)
	}
	result.RepoURL = handle.HTMLURL
	result.CloneURL = handle.CloneURL()

	// uploading the files
	it.advance(attempt, entities.StepUploadingFiles)
	report, err := it.publish.UploadFiles(ctx, handle, files, input.GitHubToken)
	result.Upload = &report
	if err != nil {
		return it.fail(&result, attempt, labelUploadFiles, err)
	}

	// deploying to the platform
	it.advance(attempt, entities.StepDeployingToPlatform)
	target, err := it.launch.Execute(ctx, LaunchInput{
		Platform:   input.Platform,
		Repository: handle,
		SiteName:   input.SiteName,
		Branch:     handle.Branch(),
		Token:      it.platformToken(input),
	})
	if err != nil {
		return it.fail(&result, attempt, "Failed to deploy to "+input.Platform.DisplayName(), err)
	}
	result.Target = &target
	result.SiteURL = target.LiveURL
	result.AdminURL = target.AdminURL

	it.advance(attempt, entities.StepSucceeded)
	result.Success = true
	result.Step = attempt.Step
	logger.Infof(
		"Deployment %s succeeded: %s is live at %s",
		attempt.ID, handle.FullName(), target.LiveURL,
	)
	return result, nil
}

func (it *DeployCommand) prepare(input DeployInput) (entities.FileSet, error) {
	if err := requireFields(map[string]string{
		"owner":    input.Owner,
		"repoName": input.RepoName,
	}); err != nil {
		return nil, err
	}
	if _, err := entities.ParsePlatform(string(input.Platform)); err != nil {
		return nil, err
	}
	if input.GitHubToken == "" {
		return nil, fmt.Errorf("%w for GitHub", entities.ErrMissingToken)
	}
	if it.platformToken(input) == "" {
		return nil, fmt.Errorf("%w for %s", entities.ErrMissingToken, input.Platform.DisplayName())
	}

	if len(input.Files) > 0 {
		return input.Files, input.Files.Validate()
	}
	if input.Portfolio == nil {
		return nil, fmt.Errorf("%w: either files or portfolio data is required", entities.ErrValidation)
	}
	if err := input.Portfolio.Validate(); err != nil {
		return nil, err
	}
	return it.renderer.Render(input.Portfolio.WithDefaults())
}

// platformToken is the GitHub token for Pages, otherwise the platform token.
func (it *DeployCommand) platformToken(input DeployInput) string {
	if input.Platform == entities.PlatformPages && input.PlatformToken == "" {
		return input.GitHubToken
	}
	return input.PlatformToken
}

func (it *DeployCommand) advance(attempt *entities.Attempt, to entities.Step) {
	if err := attempt.Advance(to, it.now()); err != nil {
		// the pipeline above only moves forward
		panic(err)
	}
	logger.Debugf("Deployment %s: %s", attempt.ID, to)
}

func (it *DeployCommand) fail(
	result *entities.DeployResult,
	attempt *entities.Attempt,
	label string,
	err error,
) (entities.DeployResult, error) {
	attempt.Fail(err, it.now())
	result.Success = false
	result.Step = attempt.Step
	result.FailedStep = attempt.FailedStep
	result.ErrorMessage = label + ": " + entities.ProviderMessage(err)

	logger.WithFields(logger.Fields{
		"deployment": attempt.ID,
		"step":       attempt.FailedStep,
	}).Errorf("%s: %v", label, err)
	return *result, err
}

func (it *DeployCommand) record(
	ctx context.Context,
	input DeployInput,
	attempt *entities.Attempt,
	result entities.DeployResult,
) {
	record := entities.DeploymentRecord{
		ID:           attempt.ID,
		Owner:        input.Owner,
		RepoName:     input.RepoName,
		Platform:     input.Platform,
		SiteURL:      result.SiteURL,
		Step:         attempt.Step,
		Success:      result.Success,
		ErrorMessage: result.ErrorMessage,
		StartedAt:    attempt.StartedAt,
		FinishedAt:   attempt.FinishedAt,
	}
	if result.Target != nil {
		record.SiteName = result.Target.SiteName
		record.SiteID = result.Target.SiteID
	}
	// the attempt is over; a cancelled request still gets its record
	if err := it.history.Save(context.WithoutCancel(ctx), record); err != nil {
		logger.Warnf("Failed to record deployment %s: %v", attempt.ID, err)
	}
}
