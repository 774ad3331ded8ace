package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rios0rios0/folio/internal"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

func buildRootCommand(publish entities.Controller) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "folio [dir]",
		Short: "Portfolio site generator and deployer",
		Long: `Generate a static portfolio website from structured data, push it to
a GitHub repository and publish it on GitHub Pages, Netlify or Vercel.

Usage modes:
  folio ./site          Publish an already rendered site directory
  folio render          Render portfolio data into a site
  folio deploy          Render, push and publish in one go
  folio serve           Start the HTTP API used by the web UI`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			publish.Execute(command, args)
			return nil
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"GitHub token (overrides config and env var detection)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")

	publish.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

// configPath reads --config ahead of cobra, since the container needs the
// settings before any subcommand exists.
func configPath(args []string) string {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	path := flags.StringP("config", "c", "", "")
	_ = flags.Parse(args)
	if *path != "" {
		return *path
	}
	found, err := entities.FindConfigFile()
	if err != nil {
		return ""
	}
	return found
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cfgPath := configPath(os.Args[1:])
	if cfgPath != "" {
		logger.Debugf("Using config file: %s", cfgPath)
	}
	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %s", err)
	}

	// Inject controllers via DIG
	appContext := injectAppContext(settings)
	cobraRoot := buildRootCommand(appContext.GetRootController())

	// Add all subcommands
	addSubcommands(cobraRoot, appContext)

	execErr := cobraRoot.Execute()
	if closeErr := appContext.Close(); closeErr != nil {
		logger.Warnf("Failed to close history: %s", closeErr)
	}
	if execErr != nil {
		logger.Errorf("Error executing 'folio': %s", execErr)
		os.Exit(1)
	}
}
