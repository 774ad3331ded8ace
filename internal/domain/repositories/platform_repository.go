package repositories

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// PlatformRepository abstracts a hosting platform that serves a site bound to
// a repository. Each implementation owns the provider-specific calls; the
// collision retry and the step sequence live in the commands.
type PlatformRepository interface {
	// Name returns the platform identifier (e.g. "netlify", "vercel", "pages").
	Name() entities.Platform

	// CreateSite issues a single create call for name. A name collision is
	// reported as an error wrapping entities.ErrCollision; no retry happens here.
	CreateSite(
		ctx context.Context,
		handle entities.RepositoryHandle,
		name, token string,
	) (entities.DeploymentTarget, error)

	// LinkRepository binds the site to the repository branch. Safe to repeat.
	LinkRepository(
		ctx context.Context,
		target entities.DeploymentTarget,
		handle entities.RepositoryHandle,
		branch, token string,
	) error

	// TriggerBuild starts a build and returns without waiting for it. The
	// returned target may carry a deploy URL reported by the platform.
	TriggerBuild(
		ctx context.Context,
		target entities.DeploymentTarget,
		handle entities.RepositoryHandle,
		token string,
	) (entities.DeploymentTarget, error)

	// GetStatus returns the most recent build/deploy record of a site.
	GetStatus(ctx context.Context, target entities.DeploymentTarget, token string) (entities.DeployStatus, error)
}
