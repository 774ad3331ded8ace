package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// DeployController handles the "deploy" subcommand: render, publish and launch.
type DeployController struct {
	command  commands.Deploy
	settings *entities.Settings
}

// NewDeployController creates a new DeployController.
func NewDeployController(command commands.Deploy, settings *entities.Settings) *DeployController {
	return &DeployController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the deploy controller.
func (it *DeployController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deploy",
		Short: "Render a portfolio and deploy it end to end",
		Long: `Render a portfolio data file, push the site to a GitHub repository
and publish it on GitHub Pages, Netlify or Vercel.

Tokens are read from --token / --platform-token, the config file,
or GITHUB_TOKEN, NETLIFY_TOKEN and VERCEL_TOKEN.`,
	}
}

// Execute runs one deployment attempt.
func (it *DeployController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	dataPath, _ := cmd.Flags().GetString("data")
	owner, _ := cmd.Flags().GetString("owner")
	repoName, _ := cmd.Flags().GetString("repo")
	platformFlag, _ := cmd.Flags().GetString("platform")
	siteName, _ := cmd.Flags().GetString("site-name")
	token, _ := cmd.Flags().GetString("token")
	platformToken, _ := cmd.Flags().GetString("platform-token")

	platform, err := parsePlatformFlag(platformFlag)
	if err != nil {
		logger.Errorf("Deploy failed: %v", err)
		return
	}
	data, err := loadPortfolio(dataPath)
	if err != nil {
		logger.Errorf("Deploy failed: %v", err)
		return
	}
	if repoName == "" {
		repoName = entities.Slugify(data.PersonalInfo.Name) + "-portfolio"
	}
	if token == "" {
		token = it.settings.TokenFor(entities.PlatformPages)
	}
	if platformToken == "" {
		platformToken = it.settings.TokenFor(platform)
	}

	result, err := it.command.Execute(ctx, commands.DeployInput{
		Owner:         owner,
		RepoName:      repoName,
		Platform:      platform,
		SiteName:      siteName,
		Portfolio:     &data,
		GitHubToken:   token,
		PlatformToken: platformToken,
	})
	logResult(result, err)
}

// AddFlags adds the deploy-specific flags to the given Cobra command.
func (it *DeployController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "Portfolio data file (YAML or JSON)")
	cmd.Flags().String("owner", "", "GitHub account that owns the repository")
	cmd.Flags().String("repo", "", "Repository name (default: <name>-portfolio)")
	cmd.Flags().String("platform", "pages", "Hosting platform (pages, netlify, vercel)")
	cmd.Flags().String("site-name", "", "Site or project name on the platform (default: repository name)")
	cmd.Flags().String("platform-token", "", "Token for Netlify or Vercel")
}

func logResult(result entities.DeployResult, err error) {
	if err != nil {
		logger.WithFields(logger.Fields{
			"deployment": result.ID,
			"step":       result.FailedStep,
		}).Errorf("Deploy failed: %s", firstNonEmpty(result.ErrorMessage, err.Error()))
		if result.Upload != nil {
			for _, failed := range result.Upload.Failed() {
				logger.Errorf("  %s: %s", failed.Path, failed.Error)
			}
		}
		return
	}
	if result.RepoURL == "" {
		return
	}
	logger.Infof("Repository: %s", result.RepoURL)
	logger.Infof("Site: %s", result.SiteURL)
	logger.Infof("Admin: %s", result.AdminURL)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
