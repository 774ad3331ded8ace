package internal

import (
	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/controllers"
	sqlRepo "github.com/rios0rios0/folio/internal/infrastructure/repositories/sqlite"
)

// AppInternal holds the controllers exposed as subcommands and the resources
// released when the process exits.
type AppInternal struct {
	controllers []entities.Controller
	publish     *controllers.PublishController
	history     *sqlRepo.SQLiteHistoryRepository
}

// NewAppInternal creates the AppInternal.
func NewAppInternal(
	controllers *[]entities.Controller,
	publish *controllers.PublishController,
	history *sqlRepo.SQLiteHistoryRepository,
) *AppInternal {
	return &AppInternal{controllers: *controllers, publish: publish, history: history}
}

// GetControllers returns every controller in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// GetRootController returns the controller run by "folio <dir>".
func (it *AppInternal) GetRootController() entities.Controller {
	return it.publish
}

// Close releases the history database.
func (it *AppInternal) Close() error {
	return it.history.Close()
}
