package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

const (
	pagesSourcePath = "/"
	statePending    = "pending"
)

// GitHubPagesRepository implements repositories.PlatformRepository for
// GitHub Pages. The site is the repository itself, so there is no name to
// collide with and nothing to link.
type GitHubPagesRepository struct {
	clients  *Clients
	settings entities.PagesSettings
	wait     func(ctx context.Context, d time.Duration) error
}

// NewGitHubPagesRepository creates the GitHub Pages platform.
func NewGitHubPagesRepository(clients *Clients, settings *entities.Settings) *GitHubPagesRepository {
	return &GitHubPagesRepository{clients: clients, settings: settings.Pages, wait: sleepContext}
}

func (p *GitHubPagesRepository) Name() entities.Platform { return entities.PlatformPages }

// CreateSite enables Pages on the handle's default branch. "Already enabled"
// (409) counts as success. It then polls until GitHub reports a status, giving
// up quietly after the configured number of attempts.
func (p *GitHubPagesRepository) CreateSite(
	ctx context.Context,
	handle entities.RepositoryHandle,
	_ string,
	token string,
) (entities.DeploymentTarget, error) {
	client := p.clients.For(token)
	_, resp, err := client.Repositories.EnablePages(ctx, handle.Owner(), handle.Name, &gh.Pages{
		Source: &gh.PagesSource{
			Branch: gh.Ptr(handle.Branch()),
			Path:   gh.Ptr(pagesSourcePath),
		},
	})
	if err != nil {
		if resp == nil || resp.StatusCode != http.StatusConflict {
			return entities.DeploymentTarget{}, fmt.Errorf(
				"failed to enable GitHub Pages for %s: %w", handle.FullName(), toAPIError(err),
			)
		}
		logger.Infof("GitHub Pages already enabled for %s", handle.FullName())
	}

	target := entities.DeploymentTarget{
		Platform: entities.PlatformPages,
		SiteName: handle.Name,
		SiteID:   handle.FullName(),
		LiveURL:  entities.PagesURL(handle.Owner(), handle.Name),
		AdminURL: entities.PagesAdminURL(handle.Owner(), handle.Name),
		State:    statePending,
	}

	info, err := p.awaitPages(ctx, client, handle)
	if err != nil {
		return entities.DeploymentTarget{}, err
	}
	if info != nil {
		target.State = info.GetStatus()
		if htmlURL := info.GetHTMLURL(); htmlURL != "" {
			target.LiveURL = htmlURL
		}
	}
	return target, nil
}

// LinkRepository is a no-op: a Pages site always serves its own repository.
func (p *GitHubPagesRepository) LinkRepository(
	_ context.Context,
	_ entities.DeploymentTarget,
	_ entities.RepositoryHandle,
	_, _ string,
) error {
	return nil
}

// TriggerBuild requests a page build. GitHub also builds on every push, so a
// rejected request is logged and the target returned unchanged.
func (p *GitHubPagesRepository) TriggerBuild(
	ctx context.Context,
	target entities.DeploymentTarget,
	handle entities.RepositoryHandle,
	token string,
) (entities.DeploymentTarget, error) {
	build, _, err := p.clients.For(token).Repositories.RequestPageBuild(ctx, handle.Owner(), handle.Name)
	if err != nil {
		logger.Warnf("Page build request for %s was not accepted: %v", handle.FullName(), toAPIError(err))
		return target, nil
	}
	if status := build.GetStatus(); status != "" {
		target.State = status
	}
	target.DeployURL = build.GetURL()
	return target, nil
}

// GetStatus reads the Pages site and its latest build. The site ID is the
// repository in "owner/name" form.
func (p *GitHubPagesRepository) GetStatus(
	ctx context.Context,
	target entities.DeploymentTarget,
	token string,
) (entities.DeployStatus, error) {
	owner, name, err := entities.ParseRepoURL(target.SiteID)
	if err != nil {
		return entities.DeployStatus{}, err
	}

	client := p.clients.For(token)
	info, resp, err := client.Repositories.GetPagesInfo(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return entities.DeployStatus{}, fmt.Errorf("%w: GitHub Pages site %s/%s", entities.ErrNotFound, owner, name)
		}
		return entities.DeployStatus{}, fmt.Errorf("failed to get GitHub Pages site: %w", toAPIError(err))
	}

	status := entities.DeployStatus{
		Platform: entities.PlatformPages,
		SiteID:   owner + "/" + name,
		SiteName: name,
		SiteURL:  entities.PagesURL(owner, name),
		AdminURL: entities.PagesAdminURL(owner, name),
		State:    info.GetStatus(),
	}
	if htmlURL := info.GetHTMLURL(); htmlURL != "" {
		status.SiteURL = htmlURL
	}
	status.LastDeployURL = status.SiteURL

	build, resp, err := client.Repositories.GetLatestPagesBuild(ctx, owner, name)
	switch {
	case err == nil:
		if build.GetStatus() != "" {
			status.State = build.GetStatus()
		}
		status.DeployID = build.GetCommit()
		status.CreatedAt = build.GetCreatedAt().Time
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		// no build has run yet
	default:
		return entities.DeployStatus{}, fmt.Errorf("failed to get latest GitHub Pages build: %w", toAPIError(err))
	}
	if status.State == "" {
		status.State = statePending
	}
	return status, nil
}

// awaitPages polls the Pages endpoint with a doubling, capped interval until
// a status is reported. Exhausting the attempts is not an error.
func (p *GitHubPagesRepository) awaitPages(
	ctx context.Context,
	client *gh.Client,
	handle entities.RepositoryHandle,
) (*gh.Pages, error) {
	interval := p.settings.PollInterval
	for attempt := 1; attempt <= p.settings.PollAttempts; attempt++ {
		info, _, err := client.Repositories.GetPagesInfo(ctx, handle.Owner(), handle.Name)
		if err == nil && info.GetStatus() != "" {
			return info, nil
		}
		logger.Debugf("GitHub Pages for %s not ready (attempt %d/%d)", handle.FullName(), attempt, p.settings.PollAttempts)
		if attempt == p.settings.PollAttempts {
			break
		}
		if waitErr := p.wait(ctx, interval); waitErr != nil {
			return nil, waitErr
		}
		interval = min(interval*2, p.settings.PollMaxInterval)
	}
	logger.Infof("GitHub Pages for %s is still provisioning, continuing", handle.FullName())
	return nil, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
