package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	for _, constructor := range []any{
		NewPublishCommand,
		NewLaunchCommand,
		NewDeployCommand,
		NewStatusCommand,
		NewRenderCommand,
		NewHistoryCommand,
		NewLocalCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *PublishCommand) Publish { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *LaunchCommand) Launch { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DeployCommand) Deploy { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *StatusCommand) Status { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RenderCommand) Render { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *HistoryCommand) History { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *LocalCommand) Local { return impl }); err != nil {
		return err
	}

	return nil
}
