package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// RenderController handles the "render" subcommand.
type RenderController struct {
	command commands.Render
}

// NewRenderController creates a new RenderController.
func NewRenderController(command commands.Render) *RenderController {
	return &RenderController{command: command}
}

// GetBind returns the Cobra command metadata for the render controller.
func (it *RenderController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "render",
		Short: "Render portfolio data into a static site",
		Long: `Render a portfolio data file (YAML or JSON) into index.html,
styles.css, script.js, package.json and README.md.

With --git the output directory becomes a Git repository and the
rendered files are committed, ready to be pushed anywhere.`,
	}
}

// Execute renders the site into the output directory.
func (it *RenderController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	dataPath, _ := cmd.Flags().GetString("data")
	outDir, _ := cmd.Flags().GetString("out")
	commit, _ := cmd.Flags().GetBool("git")

	data, err := loadPortfolio(dataPath)
	if err != nil {
		logger.Errorf("Render failed: %v", err)
		return
	}

	output, err := it.command.Execute(ctx, data, commands.RenderOptions{OutputDir: outDir, Commit: commit})
	if err != nil {
		logger.Errorf("Render failed: %v", err)
		return
	}
	for _, path := range output.Files.Paths() {
		logger.Infof("Rendered %s", path)
	}
	if output.Commit != "" {
		logger.Infof("Committed site as %s", output.Commit)
	}
}

// AddFlags adds the render-specific flags to the given Cobra command.
func (it *RenderController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "Portfolio data file (YAML or JSON)")
	cmd.Flags().String("out", "site", "Directory the site is written to")
	cmd.Flags().Bool("git", false, "Initialise a Git repository in the output directory and commit")
}
