package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/folio/internal"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

func injectAppContext(settings *entities.Settings) *internal.AppInternal {
	container := dig.New()

	// Settings are loaded before the container exists
	if err := container.Provide(func() *entities.Settings { return settings }); err != nil {
		panic(err)
	}

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}
