//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{"should parse an HTTPS URL", "https://github.com/jane/site"},
		{"should parse an HTTPS clone URL", "https://github.com/jane/site.git"},
		{"should parse a URL with trailing slash", "https://github.com/jane/site/"},
		{"should parse an SSH URL", "git@github.com:jane/site.git"},
		{"should parse an owner/name pair", "jane/site"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			owner, name, err := entities.ParseRepoURL(tt.url)

			// then
			require.NoError(t, err)
			assert.Equal(t, "jane", owner)
			assert.Equal(t, "site", name)
		})
	}

	for _, bad := range []string{"", "https://gitlab.com/jane/site", "https://github.com/jane", "jane/site/extra"} {
		t.Run("should reject "+bad, func(t *testing.T) {
			t.Parallel()

			// when
			_, _, err := entities.ParseRepoURL(bad)

			// then
			require.ErrorIs(t, err, entities.ErrValidation)
		})
	}
}

func TestRepositoryHandle(t *testing.T) {
	t.Parallel()

	t.Run("should derive GitHub URLs", func(t *testing.T) {
		t.Parallel()

		// when
		handle := entities.NewRepositoryHandle("jane", "site", "")

		// then
		assert.Equal(t, "https://github.com/jane/site", handle.HTMLURL)
		assert.Equal(t, "https://github.com/jane/site.git", handle.CloneURL())
		assert.Equal(t, "jane", handle.Owner())
		assert.Equal(t, "main", handle.Branch())
		assert.Equal(t, "https://jane.github.io/site", entities.PagesURL("jane", "site"))
		assert.Equal(t, "https://github.com/jane/site/settings/pages", entities.PagesAdminURL("jane", "site"))
	})

	t.Run("should strip the refs prefix from the branch", func(t *testing.T) {
		t.Parallel()

		handle := entities.NewRepositoryHandle("jane", "site", "refs/heads/gh-pages")
		assert.Equal(t, "gh-pages", handle.Branch())
	})

	t.Run("should tell existing files by their sha", func(t *testing.T) {
		t.Parallel()

		assert.False(t, entities.FileRecord{}.Exists())
		assert.True(t, entities.FileRecord{File: entities.File{ObjectID: "abc"}}.Exists())
	})
}

func TestFileSet(t *testing.T) {
	t.Parallel()

	t.Run("should return paths in lexical order", func(t *testing.T) {
		t.Parallel()

		files := entities.FileSet{"styles.css": "", "index.html": "", "assets/a.png": ""}
		assert.Equal(t, []string{"assets/a.png", "index.html", "styles.css"}, files.Paths())
	})

	t.Run("should reject unclean paths", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"", "/etc/passwd", "a/../b", "./index.html", "..", "a\\b"} {
			err := entities.FileSet{p: "x"}.Validate()
			require.ErrorIs(t, err, entities.ErrValidation, p)
		}
	})
}

func TestNames(t *testing.T) {
	t.Parallel()

	t.Run("should slugify display names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "jane-doe", entities.Slugify("  Jane   Doe "))
		assert.Equal(t, "jane-oneil", entities.Slugify("Jane O'Neil"))
		assert.Equal(t, "", entities.Slugify("!!!"))
	})

	t.Run("should produce lowercase alphanumeric suffixes", func(t *testing.T) {
		t.Parallel()

		suffix := entities.RandomSuffix(entities.SuffixLength)
		assert.Len(t, suffix, entities.SuffixLength)
		assert.Regexp(t, `^[a-z0-9]+$`, suffix)
		assert.Equal(t, "site-abc123", entities.WithSuffix("site", "abc123"))
	})
}
