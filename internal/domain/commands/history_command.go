package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// History is the interface for reading past deployment attempts.
type History interface {
	Get(ctx context.Context, id string) (entities.DeploymentRecord, error)
	List(ctx context.Context, owner string, limit int) ([]entities.DeploymentRecord, error)
}

// HistoryCommand reads deployment records.
type HistoryCommand struct {
	history repositories.HistoryRepository
}

// NewHistoryCommand creates a new HistoryCommand.
func NewHistoryCommand(history repositories.HistoryRepository) *HistoryCommand {
	return &HistoryCommand{history: history}
}

func (it *HistoryCommand) Get(ctx context.Context, id string) (entities.DeploymentRecord, error) {
	if id == "" {
		return entities.DeploymentRecord{}, fmt.Errorf("%w: deployment id is required", entities.ErrValidation)
	}
	return it.history.Get(ctx, id)
}

// List returns the most recent records of owner, newest first. A limit outside
// 1..100 falls back to 20.
func (it *HistoryCommand) List(ctx context.Context, owner string, limit int) ([]entities.DeploymentRecord, error) {
	if err := requireFields(map[string]string{"owner": owner}); err != nil {
		return nil, err
	}
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	return it.history.ListByOwner(ctx, owner, limit)
}
