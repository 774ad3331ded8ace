package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// Local is the interface for the local command (publish a site directory).
type Local interface {
	Execute(ctx context.Context, opts LocalOptions) (entities.DeployResult, error)
}

// LocalOptions holds runtime options for publishing a local directory.
type LocalOptions struct {
	SiteDir  string
	Owner    string // defaults to the owner of the directory's origin remote
	RepoName string // defaults to the name of the directory's origin remote
	Platform entities.Platform
	SiteName string
	DryRun   bool
	Token    string
}

// localTarget is the repository a local directory is published to.
type localTarget struct {
	Owner    string
	RepoName string
}

// LocalCommand publishes an already rendered site directory: it reads the
// files, resolves the target repository from flags or the Git remote, and
// runs the deployment pipeline on them.
type LocalCommand struct {
	workspace repositories.WorkspaceRepository
	deploy    Deploy
	settings  *entities.Settings
}

// NewLocalCommand creates a new LocalCommand.
func NewLocalCommand(
	workspace repositories.WorkspaceRepository,
	deploy Deploy,
	settings *entities.Settings,
) *LocalCommand {
	return &LocalCommand{workspace: workspace, deploy: deploy, settings: settings}
}

// Execute is the entry point for the local mode.
func (it *LocalCommand) Execute(ctx context.Context, opts LocalOptions) (entities.DeployResult, error) {
	siteDir, err := filepath.Abs(opts.SiteDir)
	if err != nil {
		return entities.DeployResult{}, fmt.Errorf("invalid path: %w", err)
	}

	files, err := it.workspace.Load(ctx, siteDir)
	if err != nil {
		return entities.DeployResult{}, err
	}
	logger.Infof("Loaded %d files from %s", len(files), siteDir)

	target, err := it.resolveTarget(siteDir, opts)
	if err != nil {
		return entities.DeployResult{}, err
	}
	logger.Infof("Target repository: %s/%s", target.Owner, target.RepoName)

	platform := opts.Platform
	if platform == "" {
		platform = entities.PlatformPages
	}

	githubToken := opts.Token
	if githubToken == "" {
		githubToken = resolveTokenFromEnv(it.settings, entities.PlatformPages)
	}
	// Pages is served by the same GitHub token
	platformToken := githubToken
	if platform != entities.PlatformPages {
		platformToken = resolveTokenFromEnv(it.settings, platform)
	}

	if opts.DryRun {
		for _, path := range files.Paths() {
			logger.Infof("[dry-run] would upload %s", path)
		}
		return entities.DeployResult{Success: true, Step: entities.StepIdle}, nil
	}
	if githubToken == "" {
		return entities.DeployResult{}, fmt.Errorf(
			"%w: set --token or %s", entities.ErrMissingToken, tokenEnvHint(entities.PlatformPages),
		)
	}
	if platformToken == "" {
		return entities.DeployResult{}, fmt.Errorf(
			"%w: set %s", entities.ErrMissingToken, tokenEnvHint(platform),
		)
	}

	return it.deploy.Execute(ctx, DeployInput{
		Owner:         target.Owner,
		RepoName:      target.RepoName,
		Platform:      platform,
		SiteName:      opts.SiteName,
		Files:         files,
		GitHubToken:   githubToken,
		PlatformToken: platformToken,
	})
}

// resolveTarget prefers explicit flags and falls back to the origin remote.
func (it *LocalCommand) resolveTarget(siteDir string, opts LocalOptions) (*localTarget, error) {
	if opts.Owner != "" && opts.RepoName != "" {
		return &localTarget{Owner: opts.Owner, RepoName: opts.RepoName}, nil
	}

	remote, err := it.workspace.Origin(siteDir)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: --owner and --repo are required when %s has no origin remote: %w",
			entities.ErrValidation, siteDir, err,
		)
	}
	target, err := parseRemoteURL(remote)
	if err != nil {
		return nil, err
	}
	if opts.Owner != "" {
		target.Owner = opts.Owner
	}
	if opts.RepoName != "" {
		target.RepoName = opts.RepoName
	}
	return target, nil
}

// parseRemoteURL extracts owner and repository name from a GitHub remote URL.
func parseRemoteURL(rawURL string) (*localTarget, error) {
	owner, name, err := entities.ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &localTarget{Owner: owner, RepoName: name}, nil
}

// resolveTokenFromEnv returns the configured token of a platform, falling
// back to the conventional environment variables.
func resolveTokenFromEnv(settings *entities.Settings, platform entities.Platform) string {
	if t := settings.TokenFor(platform); t != "" {
		return t
	}
	switch platform {
	case entities.PlatformPages:
		if t := os.Getenv("GITHUB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GH_TOKEN")
	case entities.PlatformNetlify:
		if t := os.Getenv("NETLIFY_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("NETLIFY_AUTH_TOKEN")
	case entities.PlatformVercel:
		return os.Getenv("VERCEL_TOKEN")
	default:
		return ""
	}
}

func tokenEnvHint(platform entities.Platform) string {
	switch platform {
	case entities.PlatformPages:
		return "GITHUB_TOKEN or GH_TOKEN"
	case entities.PlatformNetlify:
		return "NETLIFY_TOKEN or NETLIFY_AUTH_TOKEN"
	case entities.PlatformVercel:
		return "VERCEL_TOKEN"
	default:
		return "<unknown platform>"
	}
}
