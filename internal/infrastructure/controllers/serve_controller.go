package controllers

import (
	"context"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/folio/internal/domain/entities"
	httpAdapter "github.com/rios0rios0/folio/internal/infrastructure/http"
)

// ServeController runs the HTTP API used by the web UI.
type ServeController struct {
	server *httpAdapter.Server
}

// NewServeController creates a new ServeController.
func NewServeController(server *httpAdapter.Server) *ServeController {
	return &ServeController{server: server}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Start the portfolio API server",
		Long: `Start the HTTP API that generates portfolios, creates GitHub
repositories and deploys them to GitHub Pages, Netlify or Vercel.

Set server.api_token (or FOLIO_API_TOKEN) to require an X-API-Key
header on every /api route.`,
	}
}

// Execute serves until SIGINT or SIGTERM.
func (it *ServeController) Execute(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := it.server.Run(ctx); err != nil {
		logger.Errorf("Server stopped: %v", err)
	}
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(_ *cobra.Command) {}
