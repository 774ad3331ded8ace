package http

import (
	"go.uber.org/dig"
)

// RegisterProviders registers the API handlers, router and server with the DIG container.
func RegisterProviders(container *dig.Container) error {
	for _, constructor := range []any{
		NewTokenResolver,
		NewPortfolioHandler,
		NewGitHubHandler,
		NewPlatformHandler,
		NewDeployHandler,
		NewRouter,
		NewServer,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	return nil
}
