package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// Publish is the interface for writing a rendered site to a remote repository.
type Publish interface {
	EnsureRepository(ctx context.Context, owner, name, token string) (entities.RepositoryHandle, error)
	UploadFiles(
		ctx context.Context,
		handle entities.RepositoryHandle,
		files entities.FileSet,
		token string,
	) (entities.UploadReport, error)
	Execute(ctx context.Context, input PublishInput) (PublishOutput, error)
	CheckToken(ctx context.Context, token string) (string, error)
}

// PublishInput describes one publish request.
type PublishInput struct {
	Owner    string
	RepoName string
	Token    string
	Files    entities.FileSet
	// ExistingOnly uploads into a repository that must already exist.
	ExistingOnly bool
}

// PublishOutput is the repository that received the files and the per-file report.
type PublishOutput struct {
	Repository entities.RepositoryHandle
	Upload     entities.UploadReport
}

// PublishCommand creates (or reuses) a repository and uploads a file set into it.
type PublishCommand struct {
	source      repositories.SourceRepository
	concurrency int
}

// NewPublishCommand creates a new PublishCommand.
func NewPublishCommand(source repositories.SourceRepository, settings *entities.Settings) *PublishCommand {
	concurrency := settings.Upload.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &PublishCommand{source: source, concurrency: concurrency}
}

// EnsureRepository creates owner/name or reuses it when it already exists.
func (it *PublishCommand) EnsureRepository(
	ctx context.Context,
	owner, name, token string,
) (entities.RepositoryHandle, error) {
	if err := requireFields(map[string]string{"owner": owner, "repoName": name}); err != nil {
		return entities.RepositoryHandle{}, err
	}
	if token == "" {
		return entities.RepositoryHandle{}, fmt.Errorf("%w for GitHub", entities.ErrMissingToken)
	}

	handle, err := it.source.EnsureRepository(ctx, owner, name, token)
	if err != nil {
		return entities.RepositoryHandle{}, fmt.Errorf("%w: %w", entities.ErrRepositoryCreation, err)
	}
	logger.Infof("Repository %s is ready (branch %s)", handle.FullName(), handle.Branch())
	return handle, nil
}

// UploadFiles writes every file of the set to the handle's default branch.
// Files are uploaded concurrently; the first failure cancels the files that
// have not started yet and is returned with the failing path attached.
func (it *PublishCommand) UploadFiles(
	ctx context.Context,
	handle entities.RepositoryHandle,
	files entities.FileSet,
	token string,
) (entities.UploadReport, error) {
	if err := files.Validate(); err != nil {
		return entities.UploadReport{}, err
	}

	paths := files.Paths()
	outcomes := make([]entities.FileOutcome, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(it.concurrency)
	for i, path := range paths {
		group.Go(func() error {
			outcome, err := it.uploadFile(groupCtx, handle, path, files[path], token)
			outcomes[i] = outcome
			return err
		})
	}
	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := entities.UploadReport{Outcomes: outcomes}
	if err != nil {
		logger.Errorf(
			"Upload to %s stopped: %d of %d files landed",
			handle.FullName(), len(report.Landed()), len(paths),
		)
		return report, fmt.Errorf("%w: %w", entities.ErrUpload, err)
	}
	logger.Infof("Uploaded %d files to %s", len(paths), handle.FullName())
	return report, nil
}

// Execute ensures the repository and uploads the files into it.
func (it *PublishCommand) Execute(ctx context.Context, input PublishInput) (PublishOutput, error) {
	var (
		handle entities.RepositoryHandle
		err    error
	)
	if input.ExistingOnly {
		handle, err = it.existingRepository(ctx, input.Owner, input.RepoName, input.Token)
	} else {
		handle, err = it.EnsureRepository(ctx, input.Owner, input.RepoName, input.Token)
	}
	if err != nil {
		return PublishOutput{}, err
	}

	report, err := it.UploadFiles(ctx, handle, input.Files, input.Token)
	return PublishOutput{Repository: handle, Upload: report}, err
}

// CheckToken returns the login that owns token.
func (it *PublishCommand) CheckToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w for GitHub", entities.ErrMissingToken)
	}
	return it.source.CheckToken(ctx, token)
}

func (it *PublishCommand) existingRepository(
	ctx context.Context,
	owner, name, token string,
) (entities.RepositoryHandle, error) {
	if err := requireFields(map[string]string{"owner": owner, "repoName": name}); err != nil {
		return entities.RepositoryHandle{}, err
	}
	if token == "" {
		return entities.RepositoryHandle{}, fmt.Errorf("%w for GitHub", entities.ErrMissingToken)
	}
	return it.source.GetRepository(ctx, owner, name, token)
}

func (it *PublishCommand) uploadFile(
	ctx context.Context,
	handle entities.RepositoryHandle,
	path, content, token string,
) (entities.FileOutcome, error) {
	outcome := entities.FileOutcome{Path: path, Action: entities.UploadSkipped}
	if ctx.Err() != nil {
		return outcome, nil
	}

	prior, err := it.source.GetFile(ctx, handle, path, token)
	if err != nil {
		return failedOutcome(ctx, outcome, err), fmt.Errorf("failed to read %s: %w", path, err)
	}

	sha, err := it.source.PutFile(ctx, handle, prior, content, token)
	if err != nil {
		return failedOutcome(ctx, outcome, err), fmt.Errorf("failed to upload %s: %w", path, err)
	}

	outcome.SHA = sha
	outcome.Action = entities.UploadCreated
	if prior.Exists() {
		outcome.Action = entities.UploadUpdated
	}
	logger.Debugf("%s %s on %s", outcome.Action, path, handle.FullName())
	return outcome, nil
}

// failedOutcome marks a file failed. A file interrupted because a sibling
// failed first stays skipped.
func failedOutcome(ctx context.Context, outcome entities.FileOutcome, err error) entities.FileOutcome {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return outcome
	}
	outcome.Action = entities.UploadFailed
	outcome.Error = entities.ProviderMessage(err)
	return outcome
}

// requireFields returns a validation error naming every empty field.
func requireFields(fields map[string]string) error {
	var missing []string
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", entities.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
