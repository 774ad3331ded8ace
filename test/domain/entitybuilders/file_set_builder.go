//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/folio/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// FileSetBuilder helps create test file sets with a fluent interface.
type FileSetBuilder struct {
	*testkit.BaseBuilder
	files entities.FileSet
}

// NewFileSetBuilder creates an empty file set builder.
func NewFileSetBuilder() *FileSetBuilder {
	return &FileSetBuilder{BaseBuilder: testkit.NewBaseBuilder(), files: entities.FileSet{}}
}

// WithFile adds a file.
func (b *FileSetBuilder) WithFile(path, content string) *FileSetBuilder {
	b.files[path] = content
	return b
}

// WithSite adds the files of a minimal static site.
func (b *FileSetBuilder) WithSite() *FileSetBuilder {
	return b.
		WithFile("index.html", "<!DOCTYPE html><html></html>").
		WithFile("styles.css", "body{}").
		WithFile("script.js", "// noop")
}

// Build creates the file set.
func (b *FileSetBuilder) Build() any {
	return b.BuildFileSet()
}

// BuildFileSet creates the file set with its concrete type.
func (b *FileSetBuilder) BuildFileSet() entities.FileSet {
	out := make(entities.FileSet, len(b.files))
	for k, v := range b.files {
		out[k] = v
	}
	return out
}
