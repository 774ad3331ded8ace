package http

import (
	"net/http"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

type GitHubHandler struct {
	publish       commands.Publish
	launch        commands.Launch
	tokens        *TokenResolver
	defaultBranch string
}

func NewGitHubHandler(
	publish commands.Publish,
	launch commands.Launch,
	tokens *TokenResolver,
	settings *entities.Settings,
) *GitHubHandler {
	return &GitHubHandler{
		publish:       publish,
		launch:        launch,
		tokens:        tokens,
		defaultBranch: settings.GitHub.DefaultBranch,
	}
}

// repoRequest accepts the field names of the web UI and their shorter aliases.
type repoRequest struct {
	Username       string           `json:"username"`
	Owner          string           `json:"owner"`
	RepoName       string           `json:"repoName"`
	PortfolioFiles entities.FileSet `json:"portfolioFiles"`
	FileSet        entities.FileSet `json:"fileSet"`
	GitHubToken    string           `json:"githubToken"`
	Token          string           `json:"token"`
}

func (req repoRequest) owner() string { return firstNonEmpty(req.Username, req.Owner) }

func (req repoRequest) files() entities.FileSet {
	if len(req.PortfolioFiles) > 0 {
		return req.PortfolioFiles
	}
	return req.FileSet
}

type createRepoResponse struct {
	envelope
	RepoURL       string                 `json:"repoUrl,omitempty"`
	CloneURL      string                 `json:"cloneUrl,omitempty"`
	SiteURL       string                 `json:"siteUrl,omitempty"`
	Username      string                 `json:"username,omitempty"`
	RepoName      string                 `json:"repoName,omitempty"`
	FilesUploaded int                    `json:"filesUploaded"`
	Upload        *entities.UploadReport `json:"upload,omitempty"`
}

type updateFilesResponse struct {
	envelope
	FilesUpdated int                    `json:"filesUpdated"`
	Upload       *entities.UploadReport `json:"upload,omitempty"`
}

type setupPagesResponse struct {
	envelope
	SiteURL  string `json:"siteUrl"`
	AdminURL string `json:"adminUrl"`
	State    string `json:"state,omitempty"`
}

type checkTokenResponse struct {
	envelope
	Login string `json:"login"`
}

// CreateRepo creates (or reuses) a repository and uploads the files into it.
func (h *GitHubHandler) CreateRepo(w http.ResponseWriter, r *http.Request) {
	req, token, ok := h.decodeRepoRequest(w, r)
	if !ok {
		return
	}

	output, err := h.publish.Execute(r.Context(), commands.PublishInput{
		Owner:    req.owner(),
		RepoName: req.RepoName,
		Token:    token,
		Files:    req.files(),
	})
	if err != nil {
		writeFailure(w, err, createRepoResponse{
			envelope:      envelope{Success: false, Message: errorMessage(err)},
			RepoURL:       output.Repository.HTMLURL,
			FilesUploaded: len(output.Upload.Landed()),
			Upload:        reportOrNil(output.Upload),
		})
		return
	}

	handle := output.Repository
	writeJSON(w, http.StatusOK, createRepoResponse{
		envelope:      envelope{Success: true, Message: "Repository created and files uploaded successfully"},
		RepoURL:       handle.HTMLURL,
		CloneURL:      handle.CloneURL(),
		SiteURL:       entities.PagesURL(handle.Owner(), handle.Name),
		Username:      handle.Owner(),
		RepoName:      handle.Name,
		FilesUploaded: len(output.Upload.Landed()),
		Upload:        &output.Upload,
	})
}

// UpdateFiles uploads the files into a repository that must already exist.
func (h *GitHubHandler) UpdateFiles(w http.ResponseWriter, r *http.Request) {
	req, token, ok := h.decodeRepoRequest(w, r)
	if !ok {
		return
	}

	output, err := h.publish.Execute(r.Context(), commands.PublishInput{
		Owner:        req.owner(),
		RepoName:     req.RepoName,
		Token:        token,
		Files:        req.files(),
		ExistingOnly: true,
	})
	if err != nil {
		writeFailure(w, err, updateFilesResponse{
			envelope:     envelope{Success: false, Message: errorMessage(err)},
			FilesUpdated: len(output.Upload.Landed()),
			Upload:       reportOrNil(output.Upload),
		})
		return
	}
	writeJSON(w, http.StatusOK, updateFilesResponse{
		envelope:     envelope{Success: true, Message: "Repository files updated successfully"},
		FilesUpdated: len(output.Upload.Landed()),
		Upload:       &output.Upload,
	})
}

// SetupPages enables GitHub Pages on the repository's default branch.
func (h *GitHubHandler) SetupPages(w http.ResponseWriter, r *http.Request) {
	var req repoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token := h.tokens.Resolve(r, firstNonEmpty(req.GitHubToken, req.Token), entities.PlatformPages)
	if err := missingFields("username", req.owner(), "repoName", req.RepoName, "githubToken", token); err != nil {
		writeError(w, err)
		return
	}

	target, err := h.launch.Execute(r.Context(), commands.LaunchInput{
		Platform:   entities.PlatformPages,
		Repository: entities.NewRepositoryHandle(req.owner(), req.RepoName, h.defaultBranch),
		Token:      token,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setupPagesResponse{
		envelope: envelope{Success: true, Message: "GitHub Pages enabled successfully"},
		SiteURL:  target.LiveURL,
		AdminURL: target.AdminURL,
		State:    target.State,
	})
}

// CheckToken reports the login that owns the GitHub token.
func (h *GitHubHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	token := h.tokens.Resolve(r, "", entities.PlatformPages)
	if err := missingFields("githubToken", token); err != nil {
		writeError(w, err)
		return
	}
	login, err := h.publish.CheckToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkTokenResponse{
		envelope: envelope{Success: true, Message: "Token is valid"},
		Login:    login,
	})
}

func (h *GitHubHandler) decodeRepoRequest(w http.ResponseWriter, r *http.Request) (repoRequest, string, bool) {
	var req repoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return req, "", false
	}
	token := h.tokens.Resolve(r, firstNonEmpty(req.GitHubToken, req.Token), entities.PlatformPages)
	if err := missingFields(
		"username", req.owner(),
		"repoName", req.RepoName,
		"portfolioFiles", present(len(req.files()) > 0),
		"githubToken", token,
	); err != nil {
		writeError(w, err)
		return req, "", false
	}
	return req, token, true
}

func reportOrNil(report entities.UploadReport) *entities.UploadReport {
	if len(report.Outcomes) == 0 {
		return nil
	}
	return &report
}
