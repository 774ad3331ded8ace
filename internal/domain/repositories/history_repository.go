package repositories

import (
	"context"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// HistoryRepository stores one record per deployment attempt.
type HistoryRepository interface {
	Save(ctx context.Context, record entities.DeploymentRecord) error
	Get(ctx context.Context, id string) (entities.DeploymentRecord, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]entities.DeploymentRecord, error)
}
