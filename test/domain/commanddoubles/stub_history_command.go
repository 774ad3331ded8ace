//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StubHistoryCommand is a stub implementation of commands.History.
type StubHistoryCommand struct {
	Records   []entities.DeploymentRecord
	ListErr   error
	LastOwner string
	LastLimit int
}

var _ commands.History = (*StubHistoryCommand)(nil)

func (s *StubHistoryCommand) Get(_ context.Context, id string) (entities.DeploymentRecord, error) {
	for _, record := range s.Records {
		if record.ID == id {
			return record, nil
		}
	}
	return entities.DeploymentRecord{}, fmt.Errorf("%w: deployment %s", entities.ErrNotFound, id)
}

func (s *StubHistoryCommand) List(_ context.Context, owner string, limit int) ([]entities.DeploymentRecord, error) {
	s.LastOwner = owner
	s.LastLimit = limit
	return s.Records, s.ListErr
}
