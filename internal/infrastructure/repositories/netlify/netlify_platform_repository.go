package netlify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/httpclient"
)

const (
	providerName   = "netlify"
	staticBuildCmd = `echo "Static site - no build required"`
	publishDir     = "/"
)

// NetlifyPlatformRepository implements repositories.PlatformRepository for Netlify.
type NetlifyPlatformRepository struct {
	factory *httpclient.Factory
	baseURL string
}

// NewNetlifyPlatformRepository creates the Netlify platform.
func NewNetlifyPlatformRepository(
	factory *httpclient.Factory,
	settings *entities.Settings,
) *NetlifyPlatformRepository {
	return &NetlifyPlatformRepository{factory: factory, baseURL: settings.Netlify.APIURL}
}

func (p *NetlifyPlatformRepository) Name() entities.Platform { return entities.PlatformNetlify }

type repoSettings struct {
	Provider string `json:"provider"`
	Repo     string `json:"repo"`
	Branch   string `json:"branch"`
	Dir      string `json:"dir"`
	Cmd      string `json:"cmd,omitempty"`
}

type buildSettings struct {
	Cmd string            `json:"cmd"`
	Dir string            `json:"dir"`
	Env map[string]string `json:"env"`
}

type createSiteRequest struct {
	Name          string        `json:"name"`
	Repo          repoSettings  `json:"repo"`
	BuildSettings buildSettings `json:"build_settings"`
}

type site struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	SSLURL   string `json:"ssl_url"`
	AdminURL string `json:"admin_url"`
	State    string `json:"state"`
}

type deploy struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	DeployURL string    `json:"deploy_url"`
	CreatedAt time.Time `json:"created_at"`
}

type build struct {
	ID       string `json:"id"`
	DeployID string `json:"deploy_id"`
	Done     bool   `json:"done"`
}

// CreateSite creates a site bound to the handle's default branch. A taken name
// is reported as a collision.
func (p *NetlifyPlatformRepository) CreateSite(
	ctx context.Context,
	handle entities.RepositoryHandle,
	name, token string,
) (entities.DeploymentTarget, error) {
	var created site
	err := p.client(token).Do(ctx, http.MethodPost, "/sites", createSiteRequest{
		Name: name,
		Repo: repoSettings{
			Provider: "github",
			Repo:     handle.FullName(),
			Branch:   handle.Branch(),
			Dir:      publishDir,
			Cmd:      staticBuildCmd,
		},
		BuildSettings: buildSettings{Cmd: staticBuildCmd, Dir: publishDir, Env: map[string]string{}},
	}, &created)
	if err != nil {
		if entities.IsCollision(err) {
			return entities.DeploymentTarget{}, fmt.Errorf("%w: %w", entities.ErrCollision, err)
		}
		return entities.DeploymentTarget{}, fmt.Errorf("failed to create Netlify site %q: %w", name, err)
	}

	if created.Name == "" {
		created.Name = name
	}
	logger.Infof("Created Netlify site %s (%s)", created.Name, created.ID)
	return toTarget(created), nil
}

// LinkRepository points the site at the repository branch.
func (p *NetlifyPlatformRepository) LinkRepository(
	ctx context.Context,
	target entities.DeploymentTarget,
	handle entities.RepositoryHandle,
	branch, token string,
) error {
	body := map[string]repoSettings{
		"repo": {Provider: "github", Repo: handle.FullName(), Branch: branch, Dir: publishDir},
	}
	if err := p.client(token).Do(ctx, http.MethodPatch, "/sites/"+url.PathEscape(target.SiteID), body, nil); err != nil {
		return fmt.Errorf("failed to link Netlify site %q to %s: %w", target.SiteName, handle.FullName(), err)
	}
	return nil
}

// TriggerBuild starts a build and returns immediately.
func (p *NetlifyPlatformRepository) TriggerBuild(
	ctx context.Context,
	target entities.DeploymentTarget,
	_ entities.RepositoryHandle,
	token string,
) (entities.DeploymentTarget, error) {
	var started build
	path := "/sites/" + url.PathEscape(target.SiteID) + "/builds"
	if err := p.client(token).Do(ctx, http.MethodPost, path, nil, &started); err != nil {
		return target, fmt.Errorf("failed to trigger Netlify build for %q: %w", target.SiteName, err)
	}
	target.DeployID = started.DeployID
	return target, nil
}

// GetStatus reads the site and its latest deploy concurrently.
func (p *NetlifyPlatformRepository) GetStatus(
	ctx context.Context,
	target entities.DeploymentTarget,
	token string,
) (entities.DeployStatus, error) {
	client := p.client(token)
	sitePath := "/sites/" + url.PathEscape(target.SiteID)

	var (
		current site
		deploys []deploy
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return client.Do(groupCtx, http.MethodGet, sitePath, nil, &current)
	})
	group.Go(func() error {
		return client.Do(groupCtx, http.MethodGet, sitePath+"/deploys?per_page=1", nil, &deploys)
	})
	if err := group.Wait(); err != nil {
		if entities.StatusCode(err) == http.StatusNotFound {
			return entities.DeployStatus{}, fmt.Errorf("%w: Netlify site %q: %w", entities.ErrNotFound, target.SiteID, err)
		}
		return entities.DeployStatus{}, fmt.Errorf("failed to get Netlify status for %q: %w", target.SiteID, err)
	}

	resolved := toTarget(current)
	status := entities.DeployStatus{
		Platform: entities.PlatformNetlify,
		SiteID:   current.ID,
		SiteName: current.Name,
		SiteURL:  resolved.LiveURL,
		AdminURL: resolved.AdminURL,
		State:    current.State,
	}
	if len(deploys) > 0 {
		latest := deploys[0]
		status.State = latest.State
		status.DeployID = latest.ID
		status.LastDeployURL = latest.DeployURL
		status.CreatedAt = latest.CreatedAt
	}
	return status, nil
}

func (p *NetlifyPlatformRepository) client(token string) *httpclient.JSONClient {
	return httpclient.NewJSONClient(providerName, p.baseURL, p.factory.UserAgent(), p.factory.Client(token))
}

func toTarget(s site) entities.DeploymentTarget {
	target := entities.DeploymentTarget{
		Platform: entities.PlatformNetlify,
		SiteName: s.Name,
		SiteID:   s.ID,
		LiveURL:  fmt.Sprintf("https://%s.netlify.app", s.Name),
		AdminURL: fmt.Sprintf("https://app.netlify.com/sites/%s", s.Name),
		State:    s.State,
	}
	if s.SSLURL != "" {
		target.LiveURL = s.SSLURL
	}
	if s.AdminURL != "" {
		target.AdminURL = s.AdminURL
	}
	return target
}
