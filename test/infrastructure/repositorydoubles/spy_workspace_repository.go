//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// SpyWorkspaceRepository implements repositories.WorkspaceRepository as a configurable spy.
type SpyWorkspaceRepository struct {
	// --- Export ---
	ExportedDir   string
	ExportedFiles entities.FileSet
	Committed     bool
	CommitHash    string
	ExportErr     error

	// --- Load ---
	Files   entities.FileSet
	LoadErr error
	Loaded  []string

	// --- Origin ---
	OriginURL string
	OriginErr error
}

var _ repositories.WorkspaceRepository = (*SpyWorkspaceRepository)(nil)

func (w *SpyWorkspaceRepository) Export(
	_ context.Context, dir string, files entities.FileSet, commit bool,
) (string, error) {
	w.ExportedDir = dir
	w.ExportedFiles = files
	w.Committed = commit
	if w.ExportErr != nil {
		return "", w.ExportErr
	}
	if !commit {
		return "", nil
	}
	return w.CommitHash, nil
}

func (w *SpyWorkspaceRepository) Load(_ context.Context, dir string) (entities.FileSet, error) {
	w.Loaded = append(w.Loaded, dir)
	return w.Files, w.LoadErr
}

func (w *SpyWorkspaceRepository) Origin(_ string) (string, error) {
	return w.OriginURL, w.OriginErr
}
