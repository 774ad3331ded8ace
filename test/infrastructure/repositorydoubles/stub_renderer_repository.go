//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// StubRendererRepository returns a fixed file set and records what it rendered.
type StubRendererRepository struct {
	Files    entities.FileSet
	Err      error
	Rendered []entities.PortfolioData
}

var _ repositories.RendererRepository = (*StubRendererRepository)(nil)

func (r *StubRendererRepository) Render(data entities.PortfolioData) (entities.FileSet, error) {
	r.Rendered = append(r.Rendered, data)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Files == nil {
		return entities.FileSet{"index.html": "<html>" + data.PersonalInfo.Name + "</html>"}, nil
	}
	return r.Files, nil
}
