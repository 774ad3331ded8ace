package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/folio/internal/infrastructure/repositories"
)

// Launch is the interface for provisioning a site on a hosting platform.
type Launch interface {
	EnsureSite(
		ctx context.Context,
		platform repositories.PlatformRepository,
		handle entities.RepositoryHandle,
		name, token string,
	) (entities.DeploymentTarget, error)
	Execute(ctx context.Context, input LaunchInput) (entities.DeploymentTarget, error)
}

// LaunchInput describes one site to provision and build.
type LaunchInput struct {
	Platform   entities.Platform
	Repository entities.RepositoryHandle
	SiteName   string
	Branch     string
	Token      string
}

// LaunchCommand creates a site, links it to the repository and starts a build.
type LaunchCommand struct {
	registry *infraRepos.PlatformRegistry
	suffix   entities.SuffixGenerator
}

// NewLaunchCommand creates a new LaunchCommand.
func NewLaunchCommand(
	registry *infraRepos.PlatformRegistry,
	suffix entities.SuffixGenerator,
) *LaunchCommand {
	return &LaunchCommand{registry: registry, suffix: suffix}
}

// EnsureSite creates a site named name. On a name collision it retries exactly
// once with a random suffix; a second collision is returned as ErrCollision.
func (it *LaunchCommand) EnsureSite(
	ctx context.Context,
	platform repositories.PlatformRepository,
	handle entities.RepositoryHandle,
	name, token string,
) (entities.DeploymentTarget, error) {
	target, err := platform.CreateSite(ctx, handle, name, token)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, entities.ErrCollision) {
		return entities.DeploymentTarget{}, wrapPlatformErr(err)
	}

	retryName := entities.WithSuffix(name, it.suffix())
	logger.Warnf("Site name %q is taken on %s, retrying as %q", name, platform.Name().DisplayName(), retryName)

	target, err = platform.CreateSite(ctx, handle, retryName, token)
	if err != nil {
		if errors.Is(err, entities.ErrCollision) {
			return entities.DeploymentTarget{}, fmt.Errorf("site names %q and %q: %w", name, retryName, err)
		}
		return entities.DeploymentTarget{}, wrapPlatformErr(err)
	}
	return target, nil
}

// Execute provisions the site, links the repository branch and triggers a build.
func (it *LaunchCommand) Execute(ctx context.Context, input LaunchInput) (entities.DeploymentTarget, error) {
	if input.Token == "" {
		return entities.DeploymentTarget{}, fmt.Errorf("%w for %s", entities.ErrMissingToken, input.Platform.DisplayName())
	}
	platform, err := it.registry.Get(input.Platform)
	if err != nil {
		return entities.DeploymentTarget{}, err
	}

	name := input.SiteName
	if name == "" {
		name = input.Repository.Name
	}
	if err = requireFields(map[string]string{"siteName": name}); err != nil {
		return entities.DeploymentTarget{}, err
	}
	branch := input.Branch
	if branch == "" {
		branch = input.Repository.Branch()
	}

	logger.Infof("Provisioning %s site %q for %s", platform.Name().DisplayName(), name, input.Repository.FullName())
	target, err := it.EnsureSite(ctx, platform, input.Repository, name, input.Token)
	if err != nil {
		return entities.DeploymentTarget{}, err
	}

	if err = platform.LinkRepository(ctx, target, input.Repository, branch, input.Token); err != nil {
		return target, wrapPlatformErr(err)
	}

	built, err := platform.TriggerBuild(ctx, target, input.Repository, input.Token)
	if err != nil {
		return target, wrapPlatformErr(err)
	}
	logger.Infof("Build started for %s site %q: %s", platform.Name().DisplayName(), built.SiteName, built.LiveURL)
	return built, nil
}

func wrapPlatformErr(err error) error {
	if errors.Is(err, entities.ErrPlatform) || errors.Is(err, entities.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", entities.ErrPlatform, err)
}
