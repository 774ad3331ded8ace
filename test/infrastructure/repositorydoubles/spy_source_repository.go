//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// SpySourceRepository implements repositories.SourceRepository as a
// configurable spy. It is safe for the concurrent uploads of a batch.
type SpySourceRepository struct {
	mu sync.Mutex

	// --- EnsureRepository / GetRepository ---
	Handle        entities.RepositoryHandle
	EnsureErr     error
	GetRepoErr    error
	EnsureCalls   int
	GetRepoCalls  int
	EnsuredOwners []string

	// --- GetFile ---
	// ExistingSHAs maps a path to the sha the remote reports for it.
	ExistingSHAs map[string]string
	GetFileErrs  map[string]error

	// --- PutFile ---
	PutFileErrs map[string]error
	// Puts records every PutFile call in call order.
	Puts []SourcePut

	// --- CheckToken ---
	Login         string
	CheckTokenErr error
	Tokens        []string
}

// SourcePut is one recorded PutFile call.
type SourcePut struct {
	Path     string
	PriorSHA string
	Content  string
	Branch   string
}

var _ repositories.SourceRepository = (*SpySourceRepository)(nil)

func (s *SpySourceRepository) EnsureRepository(
	_ context.Context, owner, name, token string,
) (entities.RepositoryHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EnsureCalls++
	s.EnsuredOwners = append(s.EnsuredOwners, owner)
	s.Tokens = append(s.Tokens, token)
	if s.EnsureErr != nil {
		return entities.RepositoryHandle{}, s.EnsureErr
	}
	return s.handle(owner, name), nil
}

func (s *SpySourceRepository) GetRepository(
	_ context.Context, owner, name, _ string,
) (entities.RepositoryHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetRepoCalls++
	if s.GetRepoErr != nil {
		return entities.RepositoryHandle{}, s.GetRepoErr
	}
	return s.handle(owner, name), nil
}

func (s *SpySourceRepository) GetFile(
	_ context.Context, handle entities.RepositoryHandle, path, _ string,
) (entities.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.GetFileErrs[path]; err != nil {
		return entities.FileRecord{}, err
	}
	return entities.FileRecord{
		File:   entities.File{Path: path, ObjectID: s.ExistingSHAs[path]},
		Branch: handle.Branch(),
	}, nil
}

func (s *SpySourceRepository) PutFile(
	_ context.Context, _ entities.RepositoryHandle, prior entities.FileRecord, content, _ string,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Puts = append(s.Puts, SourcePut{
		Path:     prior.Path,
		PriorSHA: prior.ObjectID,
		Content:  content,
		Branch:   prior.Branch,
	})
	if err := s.PutFileErrs[prior.Path]; err != nil {
		return "", err
	}
	return "sha-" + prior.Path, nil
}

func (s *SpySourceRepository) CheckToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tokens = append(s.Tokens, token)
	return s.Login, s.CheckTokenErr
}

// PutPaths returns the paths written so far.
func (s *SpySourceRepository) PutPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.Puts))
	for _, p := range s.Puts {
		paths = append(paths, p.Path)
	}
	return paths
}

func (s *SpySourceRepository) handle(owner, name string) entities.RepositoryHandle {
	if s.Handle.Name != "" {
		return s.Handle
	}
	return entities.NewRepositoryHandle(owner, name, "main")
}
