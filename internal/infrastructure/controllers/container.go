package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	for _, constructor := range []any{
		NewServeController,
		NewRenderController,
		NewDeployController,
		NewPublishController,
		NewStatusController,
		NewHistoryController,
		NewControllers,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	serveController *ServeController,
	renderController *RenderController,
	deployController *DeployController,
	publishController *PublishController,
	statusController *StatusController,
	historyController *HistoryController,
) *[]entities.Controller {
	return &[]entities.Controller{
		serveController,
		renderController,
		deployController,
		publishController,
		statusController,
		historyController,
	}
}
