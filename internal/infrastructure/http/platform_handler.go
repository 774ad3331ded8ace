package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

type PlatformHandler struct {
	launch        commands.Launch
	status        commands.Status
	tokens        *TokenResolver
	defaultBranch string
}

func NewPlatformHandler(
	launch commands.Launch,
	status commands.Status,
	tokens *TokenResolver,
	settings *entities.Settings,
) *PlatformHandler {
	return &PlatformHandler{
		launch:        launch,
		status:        status,
		tokens:        tokens,
		defaultBranch: settings.GitHub.DefaultBranch,
	}
}

type netlifyDeployRequest struct {
	RepoURL      string `json:"repoUrl"`
	SiteName     string `json:"siteName"`
	NetlifyToken string `json:"netlifyToken"`
}

type netlifyDeployResponse struct {
	envelope
	SiteURL  string `json:"siteUrl"`
	AdminURL string `json:"adminUrl"`
	SiteID   string `json:"siteId"`
	SiteName string `json:"siteName"`
	DeployID string `json:"deployId,omitempty"`
}

type vercelDeployRequest struct {
	RepoURL     string `json:"repoUrl"`
	ProjectName string `json:"projectName"`
	VercelToken string `json:"vercelToken"`
}

type vercelDeployResponse struct {
	envelope
	SiteURL       string `json:"siteUrl"`
	DeploymentURL string `json:"deploymentUrl,omitempty"`
	AdminURL      string `json:"adminUrl"`
	ProjectID     string `json:"projectId"`
	ProjectName   string `json:"projectName"`
	DeploymentID  string `json:"deploymentId,omitempty"`
}

type statusResponse struct {
	envelope
	Status entities.DeployStatus `json:"status"`
}

// DeployNetlify creates a Netlify site for the repository and starts a build.
func (h *PlatformHandler) DeployNetlify(w http.ResponseWriter, r *http.Request) {
	var req netlifyDeployRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token := h.tokens.Resolve(r, req.NetlifyToken, entities.PlatformNetlify)
	if err := missingFields("repoUrl", req.RepoURL, "siteName", req.SiteName, "netlifyToken", token); err != nil {
		writeError(w, err)
		return
	}

	target, err := h.deploy(r, entities.PlatformNetlify, req.RepoURL, req.SiteName, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, netlifyDeployResponse{
		envelope: envelope{Success: true, Message: "Site deployed to Netlify successfully"},
		SiteURL:  target.LiveURL,
		AdminURL: target.AdminURL,
		SiteID:   target.SiteID,
		SiteName: target.SiteName,
		DeployID: target.DeployID,
	})
}

// DeployVercel creates a Vercel project for the repository and deploys it.
func (h *PlatformHandler) DeployVercel(w http.ResponseWriter, r *http.Request) {
	var req vercelDeployRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token := h.tokens.Resolve(r, req.VercelToken, entities.PlatformVercel)
	if err := missingFields("repoUrl", req.RepoURL, "projectName", req.ProjectName, "vercelToken", token); err != nil {
		writeError(w, err)
		return
	}

	target, err := h.deploy(r, entities.PlatformVercel, req.RepoURL, req.ProjectName, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vercelDeployResponse{
		envelope:      envelope{Success: true, Message: "Project deployed to Vercel successfully"},
		SiteURL:       target.LiveURL,
		DeploymentURL: target.DeployURL,
		AdminURL:      target.AdminURL,
		ProjectID:     target.SiteID,
		ProjectName:   target.SiteName,
		DeploymentID:  target.DeployID,
	})
}

// Status relays the latest deploy of a site. GitHub Pages sites are
// addressed as "owner/repo".
func (h *PlatformHandler) Status(w http.ResponseWriter, r *http.Request) {
	platform, err := entities.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, err)
		return
	}
	siteID := strings.Trim(chi.URLParam(r, "*"), "/")
	token := h.tokens.Resolve(r, "", platform)
	if err = missingFields("siteId", siteID, "token", token); err != nil {
		writeError(w, err)
		return
	}

	status, err := h.status.Execute(r.Context(), platform, siteID, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{envelope: envelope{Success: true}, Status: status})
}

func (h *PlatformHandler) deploy(
	r *http.Request,
	platform entities.Platform,
	repoURL, siteName, token string,
) (entities.DeploymentTarget, error) {
	owner, name, err := entities.ParseRepoURL(repoURL)
	if err != nil {
		return entities.DeploymentTarget{}, err
	}
	return h.launch.Execute(r.Context(), commands.LaunchInput{
		Platform:   platform,
		Repository: entities.NewRepositoryHandle(owner, name, h.defaultBranch),
		SiteName:   siteName,
		Token:      token,
	})
}
