package repositories

import "github.com/rios0rios0/folio/internal/domain/entities"

// RendererRepository turns portfolio data into the files of a static site.
type RendererRepository interface {
	Render(data entities.PortfolioData) (entities.FileSet, error)
}
