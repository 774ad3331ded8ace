package controllers

import (
	"context"
	"fmt"
	"text/tabwriter"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

// HistoryController handles the "history" subcommand.
type HistoryController struct {
	command commands.History
}

// NewHistoryController creates a new HistoryController.
func NewHistoryController(command commands.History) *HistoryController {
	return &HistoryController{command: command}
}

// GetBind returns the Cobra command metadata for the history controller.
func (it *HistoryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "history [deployment-id]",
		Short: "List past deployment attempts",
	}
}

// Execute prints one deployment, or the newest deployments of --owner.
func (it *HistoryController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	var records []entities.DeploymentRecord
	if len(args) > 0 {
		record, err := it.command.Get(ctx, args[0])
		if err != nil {
			logger.Errorf("History failed: %v", err)
			return
		}
		records = append(records, record)
	} else {
		owner, _ := cmd.Flags().GetString("owner")
		limit, _ := cmd.Flags().GetInt("limit")
		var err error
		if records, err = it.command.List(ctx, owner, limit); err != nil {
			logger.Errorf("History failed: %v", err)
			return
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTARTED\tREPOSITORY\tPLATFORM\tSTEP\tSITE")
	for _, r := range records {
		site := r.SiteURL
		if !r.Success {
			site = r.ErrorMessage
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%s\t%s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Owner, r.RepoName, r.Platform, r.Step, site)
	}
	_ = w.Flush()
}

// AddFlags adds the history-specific flags to the given Cobra command.
func (it *HistoryController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("owner", "", "GitHub account whose deployments are listed")
	cmd.Flags().Int("limit", 20, "Maximum number of deployments (1-100)")
}
