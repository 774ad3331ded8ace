package repositories

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// SourceRepository abstracts the source-control host that stores the rendered
// site. Every method takes the caller's token; nothing is cached between calls.
type SourceRepository interface {
	// EnsureRepository creates owner/name, or returns the existing repository
	// when the host reports that it already exists.
	EnsureRepository(ctx context.Context, owner, name, token string) (entities.RepositoryHandle, error)

	// GetRepository fetches an existing repository.
	GetRepository(ctx context.Context, owner, name, token string) (entities.RepositoryHandle, error)

	// GetFile returns the current record of path on the handle's default branch.
	// A path that does not exist yields a record with an empty sha and no error.
	GetFile(ctx context.Context, handle entities.RepositoryHandle, path, token string) (entities.FileRecord, error)

	// PutFile creates path when prior has no sha, or updates it with prior's sha.
	// It returns the sha of the written content.
	PutFile(
		ctx context.Context,
		handle entities.RepositoryHandle,
		prior entities.FileRecord,
		content, token string,
	) (string, error)

	// CheckToken returns the login that owns the token.
	CheckToken(ctx context.Context, token string) (string, error)
}
