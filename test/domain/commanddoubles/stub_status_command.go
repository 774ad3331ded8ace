//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StubStatusCommand is a stub implementation of commands.Status.
type StubStatusCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Status           entities.DeployStatus
	LastPlatform     entities.Platform
	LastSiteID       string
	LastToken        string
}

var _ commands.Status = (*StubStatusCommand)(nil)

func (s *StubStatusCommand) Execute(
	_ context.Context,
	platform entities.Platform,
	siteID, token string,
) (entities.DeployStatus, error) {
	s.ExecuteCallCount++
	s.LastPlatform = platform
	s.LastSiteID = siteID
	s.LastToken = token
	return s.Status, s.ExecuteErr
}
