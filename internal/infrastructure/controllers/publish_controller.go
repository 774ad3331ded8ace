package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// PublishController deploys an already rendered site directory (standalone local mode).
type PublishController struct {
	command commands.Local
}

// NewPublishController creates a new PublishController.
func NewPublishController(command commands.Local) *PublishController {
	return &PublishController{command: command}
}

// GetBind returns the Cobra command metadata for the publish controller.
func (it *PublishController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "publish [dir]",
		Short: "Deploy a rendered site directory",
		Long: `Upload every file of a local site directory to a GitHub repository
and publish it. Owner and repository default to the directory's
origin remote.`,
	}
}

// Execute publishes the directory given as argument, or the current one.
func (it *PublishController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	token, _ := cmd.Flags().GetString("token")
	owner, _ := cmd.Flags().GetString("owner")
	repoName, _ := cmd.Flags().GetString("repo")
	platformFlag, _ := cmd.Flags().GetString("platform")
	siteName, _ := cmd.Flags().GetString("site-name")

	siteDir := "."
	if len(args) > 0 {
		siteDir = args[0]
	}
	platform, err := parsePlatformFlag(platformFlag)
	if err != nil {
		logger.Errorf("Publish failed: %v", err)
		return
	}

	result, err := it.command.Execute(ctx, commands.LocalOptions{
		SiteDir:  siteDir,
		Owner:    owner,
		RepoName: repoName,
		Platform: platform,
		SiteName: siteName,
		DryRun:   dryRun,
		Token:    token,
	})
	logResult(result, err)
}

// AddFlags adds the publish-specific flags to the given Cobra command.
func (it *PublishController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("owner", "", "GitHub account (default: from the origin remote)")
	cmd.Flags().String("repo", "", "Repository name (default: from the origin remote)")
	cmd.Flags().String("platform", "pages", "Hosting platform (pages, netlify, vercel)")
	cmd.Flags().String("site-name", "", "Site or project name on the platform")
}
