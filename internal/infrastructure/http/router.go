package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

type healthResponse struct {
	envelope
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRouter wires every API route behind the shared middleware.
func NewRouter(
	portfolioH *PortfolioHandler,
	githubH *GitHubHandler,
	platformH *PlatformHandler,
	deployH *DeployHandler,
	settings *entities.Settings,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware(settings.Server.AllowedOrigins))
	r.Use(bodySizeLimitMiddleware(settings.Server.MaxBodyBytes))

	health := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			envelope:  envelope{Success: true, Message: "Portfolio Generator API is running"},
			Status:    "OK",
			Timestamp: time.Now().UTC(),
		})
	}
	r.Get("/healthz", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(settings.Server.APIToken))

			r.Post("/portfolio/generate", portfolioH.Generate)

			r.Route("/github", func(r chi.Router) {
				r.Post("/create-repo", githubH.CreateRepo)
				r.Post("/update-files", githubH.UpdateFiles)
				r.Post("/setup-pages", githubH.SetupPages)
				r.Get("/check-token", githubH.CheckToken)
			})
			r.Post("/netlify/deploy", platformH.DeployNetlify)
			r.Post("/vercel/deploy", platformH.DeployVercel)
			r.Get("/{platform}/status/*", platformH.Status)

			r.Post("/deploy", deployH.Deploy)
			r.Get("/deployments", deployH.ListDeployments)
			r.Get("/deployments/{id}", deployH.GetDeployment)
		})

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "API endpoint not found"})
		})
	})

	return r
}
