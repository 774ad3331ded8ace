//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StubPublishCommand is a stub implementation of commands.Publish.
type StubPublishCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Output           commands.PublishOutput
	LastInput        commands.PublishInput
	Login            string
	CheckTokenErr    error
	LastToken        string
}

var _ commands.Publish = (*StubPublishCommand)(nil)

func (s *StubPublishCommand) EnsureRepository(
	_ context.Context,
	owner, name, _ string,
) (entities.RepositoryHandle, error) {
	return entities.NewRepositoryHandle(owner, name, "main"), s.ExecuteErr
}

func (s *StubPublishCommand) UploadFiles(
	_ context.Context,
	_ entities.RepositoryHandle,
	_ entities.FileSet,
	_ string,
) (entities.UploadReport, error) {
	return s.Output.Upload, s.ExecuteErr
}

func (s *StubPublishCommand) Execute(_ context.Context, input commands.PublishInput) (commands.PublishOutput, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Output, s.ExecuteErr
}

func (s *StubPublishCommand) CheckToken(_ context.Context, token string) (string, error) {
	s.LastToken = token
	return s.Login, s.CheckTokenErr
}
