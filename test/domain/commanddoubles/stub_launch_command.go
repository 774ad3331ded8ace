//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// StubLaunchCommand is a stub implementation of commands.Launch.
type StubLaunchCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Target           entities.DeploymentTarget
	LastInput        commands.LaunchInput
}

var _ commands.Launch = (*StubLaunchCommand)(nil)

func (s *StubLaunchCommand) EnsureSite(
	_ context.Context,
	_ repositories.PlatformRepository,
	_ entities.RepositoryHandle,
	_, _ string,
) (entities.DeploymentTarget, error) {
	return s.Target, s.ExecuteErr
}

func (s *StubLaunchCommand) Execute(_ context.Context, input commands.LaunchInput) (entities.DeploymentTarget, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Target, s.ExecuteErr
}
