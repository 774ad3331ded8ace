//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StubRenderCommand is a stub implementation of commands.Render.
type StubRenderCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Files            entities.FileSet
	LastData         entities.PortfolioData
	LastOpts         commands.RenderOptions
}

var _ commands.Render = (*StubRenderCommand)(nil)

func (s *StubRenderCommand) Execute(
	_ context.Context,
	data entities.PortfolioData,
	opts commands.RenderOptions,
) (commands.RenderOutput, error) {
	s.ExecuteCallCount++
	s.LastData = data
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return commands.RenderOutput{}, s.ExecuteErr
	}
	return commands.RenderOutput{Files: s.Files}, nil
}
