package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/folio/internal/domain/entities"
	infraRepos "github.com/rios0rios0/folio/internal/infrastructure/repositories"
)

// Status is the interface for querying the latest deploy of a site.
type Status interface {
	Execute(ctx context.Context, platform entities.Platform, siteID, token string) (entities.DeployStatus, error)
}

// StatusCommand relays the latest build/deploy record of a site.
type StatusCommand struct {
	registry *infraRepos.PlatformRegistry
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(registry *infraRepos.PlatformRegistry) *StatusCommand {
	return &StatusCommand{registry: registry}
}

// Execute returns the status of siteID. For GitHub Pages the site ID is the
// repository in "owner/name" form.
func (it *StatusCommand) Execute(
	ctx context.Context,
	platform entities.Platform,
	siteID, token string,
) (entities.DeployStatus, error) {
	if err := requireFields(map[string]string{"siteId": siteID}); err != nil {
		return entities.DeployStatus{}, err
	}
	if token == "" {
		return entities.DeployStatus{}, fmt.Errorf("%w for %s", entities.ErrMissingToken, platform.DisplayName())
	}
	repo, err := it.registry.Get(platform)
	if err != nil {
		return entities.DeployStatus{}, err
	}

	status, err := repo.GetStatus(ctx, entities.DeploymentTarget{Platform: platform, SiteID: siteID}, token)
	if err != nil {
		return entities.DeployStatus{}, wrapPlatformErr(err)
	}
	return status, nil
}
