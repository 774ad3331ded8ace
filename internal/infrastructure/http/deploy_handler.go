package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

type DeployHandler struct {
	deploy  commands.Deploy
	history commands.History
	tokens  *TokenResolver
}

func NewDeployHandler(deploy commands.Deploy, history commands.History, tokens *TokenResolver) *DeployHandler {
	return &DeployHandler{deploy: deploy, history: history, tokens: tokens}
}

type deployRequest struct {
	Owner          string                  `json:"owner"`
	Username       string                  `json:"username"`
	RepoName       string                  `json:"repoName"`
	Platform       string                  `json:"platform"`
	SiteName       string                  `json:"siteName"`
	PortfolioData  *entities.PortfolioData `json:"portfolioData"`
	FileSet        entities.FileSet        `json:"fileSet"`
	PortfolioFiles entities.FileSet        `json:"portfolioFiles"`
	GitHubToken    string                  `json:"githubToken"`
	PlatformToken  string                  `json:"platformToken"`
}

type deployResponse struct {
	entities.DeployResult
	Message string `json:"message,omitempty"`
}

type historyResponse struct {
	envelope
	Deployments []entities.DeploymentRecord `json:"deployments"`
}

type recordResponse struct {
	envelope
	Deployment entities.DeploymentRecord `json:"deployment"`
}

// Deploy runs the whole pipeline: repository, upload, then the platform.
func (h *DeployHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	owner := firstNonEmpty(req.Owner, req.Username)
	files := req.FileSet
	if len(files) == 0 {
		files = req.PortfolioFiles
	}
	if err := missingFields(
		"owner", owner,
		"repoName", req.RepoName,
		"platform", req.Platform,
		"portfolioData", present(req.PortfolioData != nil || len(files) > 0),
	); err != nil {
		writeError(w, err)
		return
	}
	platform, err := entities.ParsePlatform(req.Platform)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.deploy.Execute(r.Context(), commands.DeployInput{
		Owner:         owner,
		RepoName:      req.RepoName,
		Platform:      platform,
		SiteName:      req.SiteName,
		Files:         files,
		Portfolio:     req.PortfolioData,
		GitHubToken:   h.tokens.Configured(req.GitHubToken, entities.PlatformPages),
		PlatformToken: h.tokens.Configured(req.PlatformToken, platform),
	})
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			writeError(w, err)
			return
		}
		writeFailure(w, err, deployResponse{DeployResult: result, Message: result.ErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, deployResponse{DeployResult: result, Message: "Portfolio deployed successfully"})
}

// ListDeployments returns the newest deployment attempts of an owner.
func (h *DeployHandler) ListDeployments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.history.List(r.Context(), r.URL.Query().Get("owner"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{envelope: envelope{Success: true}, Deployments: records})
}

// GetDeployment returns a single deployment attempt.
func (h *DeployHandler) GetDeployment(w http.ResponseWriter, r *http.Request) {
	record, err := h.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{envelope: envelope{Success: true}, Deployment: record})
}
