package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// Render is the interface for producing the files of a portfolio site.
type Render interface {
	Execute(ctx context.Context, data entities.PortfolioData, opts RenderOptions) (RenderOutput, error)
}

// RenderOptions controls where the rendered site goes besides the returned set.
type RenderOptions struct {
	OutputDir string // when set, files are written under this directory
	Commit    bool   // initialise a Git repository in OutputDir and commit
}

// RenderOutput is the rendered file set and, when committed, the commit hash.
type RenderOutput struct {
	Files  entities.FileSet
	Commit string
}

// RenderCommand validates portfolio data and renders it into a file set.
type RenderCommand struct {
	renderer  repositories.RendererRepository
	workspace repositories.WorkspaceRepository
}

// NewRenderCommand creates a new RenderCommand.
func NewRenderCommand(
	renderer repositories.RendererRepository,
	workspace repositories.WorkspaceRepository,
) *RenderCommand {
	return &RenderCommand{renderer: renderer, workspace: workspace}
}

// Execute renders data and optionally exports the result.
func (it *RenderCommand) Execute(
	ctx context.Context,
	data entities.PortfolioData,
	opts RenderOptions,
) (RenderOutput, error) {
	if err := data.Validate(); err != nil {
		return RenderOutput{}, err
	}
	files, err := it.renderer.Render(data.WithDefaults())
	if err != nil {
		return RenderOutput{}, err
	}
	output := RenderOutput{Files: files}
	if opts.OutputDir == "" {
		return output, nil
	}

	commit, err := it.workspace.Export(ctx, opts.OutputDir, files, opts.Commit)
	if err != nil {
		return output, err
	}
	output.Commit = commit
	logger.Infof("Wrote %d files to %s", len(files), opts.OutputDir)
	return output, nil
}
