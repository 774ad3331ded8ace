package vercel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/httpclient"
)

const (
	providerName     = "vercel"
	gitType          = "github"
	deploymentTarget = "production"
	defaultRegion    = "iad1"
)

// VercelPlatformRepository implements repositories.PlatformRepository for Vercel.
type VercelPlatformRepository struct {
	factory *httpclient.Factory
	baseURL string
}

// NewVercelPlatformRepository creates the Vercel platform.
func NewVercelPlatformRepository(
	factory *httpclient.Factory,
	settings *entities.Settings,
) *VercelPlatformRepository {
	return &VercelPlatformRepository{factory: factory, baseURL: settings.Vercel.APIURL}
}

func (p *VercelPlatformRepository) Name() entities.Platform { return entities.PlatformVercel }

type gitRepository struct {
	Type string `json:"type"`
	Repo string `json:"repo"`
}

// createProjectRequest leaves every build field null: the site is static.
type createProjectRequest struct {
	Name                     string        `json:"name"`
	GitRepository            gitRepository `json:"gitRepository"`
	BuildCommand             *string       `json:"buildCommand"`
	DevCommand               *string       `json:"devCommand"`
	InstallCommand           *string       `json:"installCommand"`
	OutputDirectory          *string       `json:"outputDirectory"`
	PublicSource             *bool         `json:"publicSource"`
	RootDirectory            *string       `json:"rootDirectory"`
	ServerlessFunctionRegion string        `json:"serverlessFunctionRegion"`
	Framework                *string       `json:"framework"`
}

// projectLink is the Git repository a project is connected to. Org is the
// repository owner.
type projectLink struct {
	Type string `json:"type"`
	Org  string `json:"org"`
	Repo string `json:"repo"`
}

type project struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Link *projectLink `json:"link"`
}

// owner returns the owner of the linked repository, or "" when unlinked.
func (p project) owner() string {
	if p.Link == nil {
		return ""
	}
	return p.Link.Org
}

type linkRequest struct {
	Type      string `json:"type"`
	Repo      string `json:"repo"`
	GitBranch string `json:"gitBranch"`
}

type gitSource struct {
	Type string `json:"type"`
	Repo string `json:"repo"`
	Ref  string `json:"ref"`
}

type deploymentRequest struct {
	Name      string    `json:"name"`
	Project   string    `json:"project"`
	GitSource gitSource `json:"gitSource"`
	Target    string    `json:"target"`
}

type deployment struct {
	UID        string `json:"uid"`
	ID         string `json:"id"`
	URL        string `json:"url"`
	State      string `json:"state"`
	ReadyState string `json:"readyState"`
	CreatedAt  int64  `json:"createdAt"`
}

type deploymentList struct {
	Deployments []deployment `json:"deployments"`
}

// CreateSite creates a project bound to the repository. A taken name is
// reported as a collision.
func (p *VercelPlatformRepository) CreateSite(
	ctx context.Context,
	handle entities.RepositoryHandle,
	name, token string,
) (entities.DeploymentTarget, error) {
	var created project
	err := p.client(token).Do(ctx, http.MethodPost, "/v9/projects", createProjectRequest{
		Name:                     name,
		GitRepository:            gitRepository{Type: gitType, Repo: handle.FullName()},
		ServerlessFunctionRegion: defaultRegion,
	}, &created)
	if err != nil {
		if entities.IsCollision(err) {
			return entities.DeploymentTarget{}, fmt.Errorf("%w: %w", entities.ErrCollision, err)
		}
		return entities.DeploymentTarget{}, fmt.Errorf("failed to create Vercel project %q: %w", name, err)
	}

	if created.Name == "" {
		created.Name = name
	}
	logger.Infof("Created Vercel project %s (%s)", created.Name, created.ID)
	return toTarget(created, handle.Owner()), nil
}

// LinkRepository connects the project to the repository branch.
func (p *VercelPlatformRepository) LinkRepository(
	ctx context.Context,
	target entities.DeploymentTarget,
	handle entities.RepositoryHandle,
	branch, token string,
) error {
	path := "/v9/projects/" + url.PathEscape(target.SiteID) + "/link"
	err := p.client(token).Do(ctx, http.MethodPost, path, linkRequest{
		Type:      gitType,
		Repo:      handle.FullName(),
		GitBranch: branch,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to link Vercel project %q to %s: %w", target.SiteName, handle.FullName(), err)
	}
	return nil
}

// TriggerBuild creates a production deployment from the default branch.
func (p *VercelPlatformRepository) TriggerBuild(
	ctx context.Context,
	target entities.DeploymentTarget,
	handle entities.RepositoryHandle,
	token string,
) (entities.DeploymentTarget, error) {
	var created deployment
	err := p.client(token).Do(ctx, http.MethodPost, "/v13/deployments", deploymentRequest{
		Name:      target.SiteName,
		Project:   target.SiteID,
		GitSource: gitSource{Type: gitType, Repo: handle.FullName(), Ref: handle.Branch()},
		Target:    deploymentTarget,
	}, &created)
	if err != nil {
		return target, fmt.Errorf("failed to trigger Vercel deployment for %q: %w", target.SiteName, err)
	}

	target.DeployID = firstNonEmpty(created.UID, created.ID)
	target.DeployURL = absoluteURL(created.URL)
	if state := firstNonEmpty(created.ReadyState, created.State); state != "" {
		target.State = state
	}
	return target, nil
}

// GetStatus reads the project and its latest deployment concurrently.
func (p *VercelPlatformRepository) GetStatus(
	ctx context.Context,
	target entities.DeploymentTarget,
	token string,
) (entities.DeployStatus, error) {
	client := p.client(token)
	projectID := url.PathEscape(target.SiteID)

	var (
		current project
		latest  deploymentList
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return client.Do(groupCtx, http.MethodGet, "/v9/projects/"+projectID, nil, &current)
	})
	group.Go(func() error {
		query := url.Values{"projectId": {target.SiteID}, "limit": {"1"}}
		return client.Do(groupCtx, http.MethodGet, "/v6/deployments?"+query.Encode(), nil, &latest)
	})
	if err := group.Wait(); err != nil {
		if entities.StatusCode(err) == http.StatusNotFound {
			return entities.DeployStatus{}, fmt.Errorf("%w: Vercel project %q: %w", entities.ErrNotFound, target.SiteID, err)
		}
		return entities.DeployStatus{}, fmt.Errorf("failed to get Vercel status for %q: %w", target.SiteID, err)
	}

	resolved := toTarget(current, current.owner())
	status := entities.DeployStatus{
		Platform: entities.PlatformVercel,
		SiteID:   current.ID,
		SiteName: current.Name,
		SiteURL:  resolved.LiveURL,
		AdminURL: resolved.AdminURL,
	}
	if len(latest.Deployments) > 0 {
		last := latest.Deployments[0]
		status.DeployID = firstNonEmpty(last.UID, last.ID)
		status.State = firstNonEmpty(last.State, last.ReadyState)
		status.LastDeployURL = absoluteURL(last.URL)
		if last.CreatedAt > 0 {
			status.CreatedAt = time.UnixMilli(last.CreatedAt).UTC()
		}
	}
	return status, nil
}

func (p *VercelPlatformRepository) client(token string) *httpclient.JSONClient {
	return httpclient.NewJSONClient(providerName, p.baseURL, p.factory.UserAgent(), p.factory.Client(token))
}

// toTarget builds the admin URL from the repository owner; without one the
// dashboard address is unknown and AdminURL stays empty.
func toTarget(p project, owner string) entities.DeploymentTarget {
	target := entities.DeploymentTarget{
		Platform: entities.PlatformVercel,
		SiteName: p.Name,
		SiteID:   p.ID,
		LiveURL:  fmt.Sprintf("https://%s.vercel.app", p.Name),
	}
	if owner != "" {
		target.AdminURL = fmt.Sprintf("https://vercel.com/%s/%s", owner, p.Name)
	}
	return target
}

func absoluteURL(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
