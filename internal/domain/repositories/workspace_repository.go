package repositories

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// WorkspaceRepository reads and writes rendered sites on local storage.
type WorkspaceRepository interface {
	// Export writes files under dir. When commit is set, dir becomes a Git
	// repository and the files are committed; the commit hash is returned.
	Export(ctx context.Context, dir string, files entities.FileSet, commit bool) (string, error)

	// Load reads every regular file under dir, skipping the .git directory.
	Load(ctx context.Context, dir string) (entities.FileSet, error)

	// Origin returns the URL of the "origin" remote of the Git repository at dir.
	Origin(dir string) (string, error)
}
