//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StubDeployCommand is a stub implementation of commands.Deploy.
type StubDeployCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.DeployResult
	LastInput        commands.DeployInput
}

var _ commands.Deploy = (*StubDeployCommand)(nil)

func (s *StubDeployCommand) Execute(_ context.Context, input commands.DeployInput) (entities.DeployResult, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Result, s.ExecuteErr
}
