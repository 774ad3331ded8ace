//go:build unit

package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/workspace"
	"github.com/rios0rios0/folio/test/domain/entitybuilders"
)

func newWorkspace() *workspace.GitWorkspaceRepository {
	return workspace.NewGitWorkspaceRepository(entities.DefaultSettings(), func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestGitWorkspaceRepositoryExport(t *testing.T) {
	t.Parallel()

	t.Run("should write every file without committing", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		files := entitybuilders.NewFileSetBuilder().WithSite().WithFile("assets/logo.svg", "<svg/>").BuildFileSet()

		// when
		hash, err := newWorkspace().Export(context.Background(), dir, files, false)

		// then
		require.NoError(t, err)
		assert.Empty(t, hash)
		content, readErr := os.ReadFile(filepath.Join(dir, "assets", "logo.svg"))
		require.NoError(t, readErr)
		assert.Equal(t, "<svg/>", string(content))
		assert.NoDirExists(t, filepath.Join(dir, ".git"))
	})

	t.Run("should commit the files on the default branch", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		files := entitybuilders.NewFileSetBuilder().WithSite().BuildFileSet()

		// when
		hash, err := newWorkspace().Export(context.Background(), dir, files, true)

		// then
		require.NoError(t, err)
		repo, openErr := git.PlainOpen(dir)
		require.NoError(t, openErr)
		head, headErr := repo.Head()
		require.NoError(t, headErr)
		assert.Equal(t, hash, head.Hash().String())
		assert.Equal(t, "refs/heads/main", head.Name().String())
	})

	t.Run("should keep the previous commit when nothing changed", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		files := entitybuilders.NewFileSetBuilder().WithSite().BuildFileSet()
		first, err := newWorkspace().Export(context.Background(), dir, files, true)
		require.NoError(t, err)

		// when
		second, err := newWorkspace().Export(context.Background(), dir, files, true)

		// then
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("should reject paths escaping the directory", func(t *testing.T) {
		t.Parallel()

		// given
		files := entities.FileSet{"../evil.html": "x"}

		// when
		_, err := newWorkspace().Export(context.Background(), t.TempDir(), files, false)

		// then
		require.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestGitWorkspaceRepositoryLoad(t *testing.T) {
	t.Parallel()

	t.Run("should read the site and skip the Git directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		files := entitybuilders.NewFileSetBuilder().WithSite().WithFile("css/extra.css", "p{}").BuildFileSet()
		_, err := newWorkspace().Export(context.Background(), dir, files, true)
		require.NoError(t, err)

		// when
		loaded, err := newWorkspace().Load(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, files, loaded)
	})

	t.Run("should reject an empty directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		_, err := newWorkspace().Load(context.Background(), dir)

		// then
		require.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestGitWorkspaceRepositoryOrigin(t *testing.T) {
	t.Parallel()

	t.Run("should return the origin URL", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		_, err = repo.CreateRemote(&config.RemoteConfig{
			Name: "origin",
			URLs: []string{"https://github.com/jane/site.git"},
		})
		require.NoError(t, err)

		// when
		origin, err := newWorkspace().Origin(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/jane/site.git", origin)
	})

	t.Run("should fail without an origin remote", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		_, err := git.PlainInit(dir, false)
		require.NoError(t, err)

		// when
		_, err = newWorkspace().Origin(dir)

		// then
		require.Error(t, err)
	})
}
