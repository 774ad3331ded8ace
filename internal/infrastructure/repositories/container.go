package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/folio/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/httpclient"
	nfRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/netlify"
	sqlRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/sqlite"
	tplRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/template"
	vcRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/vercel"
	wsRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/workspace"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register repository constructors
	for _, constructor := range []any{
		httpclient.NewFactory,
		ghRepo.NewClients,
		ghRepo.NewGitHubSourceRepository,
		ghRepo.NewGitHubPagesRepository,
		nfRepo.NewNetlifyPlatformRepository,
		vcRepo.NewVercelPlatformRepository,
		tplRepo.NewTemplateRendererRepository,
		sqlRepo.NewSQLiteHistoryRepository,
		wsRepo.NewGitWorkspaceRepository,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ghRepo.GitHubSourceRepository) domainRepos.SourceRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *tplRepo.TemplateRendererRepository) domainRepos.RendererRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *sqlRepo.SQLiteHistoryRepository) domainRepos.HistoryRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *wsRepo.GitWorkspaceRepository) domainRepos.WorkspaceRepository {
		return impl
	}); err != nil {
		return err
	}

	// Register platform registry with every hosting platform
	if err := container.Provide(func(
		pages *ghRepo.GitHubPagesRepository,
		netlify *nfRepo.NetlifyPlatformRepository,
		vercel *vcRepo.VercelPlatformRepository,
	) *PlatformRegistry {
		reg := NewPlatformRegistry()
		reg.Register(pages)
		reg.Register(netlify)
		reg.Register(vercel)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
