//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// SpyPlatformRepository implements repositories.PlatformRepository as a configurable spy.
type SpyPlatformRepository struct {
	Platform entities.Platform

	// --- CreateSite ---
	// CreateErrs is consumed one entry per call; a nil entry succeeds.
	CreateErrs   []error
	CreatedNames []string

	// --- LinkRepository ---
	LinkErr      error
	LinkedBranch string
	LinkCalls    int

	// --- TriggerBuild ---
	BuildErr   error
	DeployID   string
	BuildCalls int

	// --- GetStatus ---
	Status       entities.DeployStatus
	StatusErr    error
	StatusTarget entities.DeploymentTarget
	Tokens       []string
}

var _ repositories.PlatformRepository = (*SpyPlatformRepository)(nil)

func (p *SpyPlatformRepository) Name() entities.Platform { return p.Platform }

func (p *SpyPlatformRepository) CreateSite(
	_ context.Context, _ entities.RepositoryHandle, name, token string,
) (entities.DeploymentTarget, error) {
	call := len(p.CreatedNames)
	p.CreatedNames = append(p.CreatedNames, name)
	p.Tokens = append(p.Tokens, token)
	if call < len(p.CreateErrs) && p.CreateErrs[call] != nil {
		return entities.DeploymentTarget{}, p.CreateErrs[call]
	}
	return entities.DeploymentTarget{
		Platform: p.Platform,
		SiteName: name,
		SiteID:   "site-" + name,
		LiveURL:  "https://" + name + ".example.app",
		AdminURL: "https://admin.example.app/" + name,
	}, nil
}

func (p *SpyPlatformRepository) LinkRepository(
	_ context.Context, _ entities.DeploymentTarget, _ entities.RepositoryHandle, branch, _ string,
) error {
	p.LinkCalls++
	p.LinkedBranch = branch
	return p.LinkErr
}

func (p *SpyPlatformRepository) TriggerBuild(
	_ context.Context, target entities.DeploymentTarget, _ entities.RepositoryHandle, _ string,
) (entities.DeploymentTarget, error) {
	p.BuildCalls++
	if p.BuildErr != nil {
		return target, p.BuildErr
	}
	target.DeployID = p.DeployID
	return target, nil
}

func (p *SpyPlatformRepository) GetStatus(
	_ context.Context, target entities.DeploymentTarget, token string,
) (entities.DeployStatus, error) {
	p.StatusTarget = target
	p.Tokens = append(p.Tokens, token)
	return p.Status, p.StatusErr
}
