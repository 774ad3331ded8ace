//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/domain/repositories"
)

// SpyHistoryRepository keeps deployment records in memory.
type SpyHistoryRepository struct {
	mu sync.Mutex

	Saved   []entities.DeploymentRecord
	SaveErr error

	Records   map[string]entities.DeploymentRecord
	ListOwner string
	ListLimit int
	ListErr   error
}

var _ repositories.HistoryRepository = (*SpyHistoryRepository)(nil)

func (h *SpyHistoryRepository) Save(_ context.Context, record entities.DeploymentRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Saved = append(h.Saved, record)
	return h.SaveErr
}

func (h *SpyHistoryRepository) Get(_ context.Context, id string) (entities.DeploymentRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if record, ok := h.Records[id]; ok {
		return record, nil
	}
	return entities.DeploymentRecord{}, entities.ErrNotFound
}

func (h *SpyHistoryRepository) ListByOwner(
	_ context.Context, owner string, limit int,
) ([]entities.DeploymentRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ListOwner = owner
	h.ListLimit = limit
	if h.ListErr != nil {
		return nil, h.ListErr
	}
	var out []entities.DeploymentRecord
	for _, r := range h.Saved {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

// Last returns the most recently saved record.
func (h *SpyHistoryRepository) Last() entities.DeploymentRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Saved) == 0 {
		return entities.DeploymentRecord{}
	}
	return h.Saved[len(h.Saved)-1]
}
