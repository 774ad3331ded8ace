package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command  commands.Status
	settings *entities.Settings
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Status, settings *entities.Settings) *StatusController {
	return &StatusController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status <platform> <site-id>",
		Short: "Show the latest deploy of a site",
		Long: `Show the latest build or deploy of a site. For GitHub Pages the
site id is the repository as owner/name.`,
	}
}

// Execute queries the platform for the latest deploy.
func (it *StatusController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) != 2 {
		logger.Errorf("Status requires <platform> and <site-id>")
		return
	}
	platform, err := entities.ParsePlatform(args[0])
	if err != nil {
		logger.Errorf("Status failed: %v", err)
		return
	}
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = it.settings.TokenFor(platform)
	}

	status, err := it.command.Execute(ctx, platform, args[1], token)
	if err != nil {
		logger.Errorf("Status failed: %v", err)
		return
	}
	logger.WithFields(logger.Fields{
		"site":   status.SiteName,
		"deploy": status.DeployID,
	}).Infof("%s: %s (%s)", status.SiteURL, status.State, status.AdminURL)
}

// AddFlags adds the status-specific flags to the given Cobra command.
func (it *StatusController) AddFlags(_ *cobra.Command) {}
