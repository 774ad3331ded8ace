package entities

import (
	"fmt"
	"strings"
	"time"
)

// Platform names a hosting provider a site can be deployed to.
type Platform string

const (
	PlatformPages   Platform = "pages"
	PlatformNetlify Platform = "netlify"
	PlatformVercel  Platform = "vercel"
)

// ParsePlatform accepts the platform names used by the web UI.
func ParsePlatform(raw string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pages", "github", "github-pages", "gh-pages":
		return PlatformPages, nil
	case "netlify":
		return PlatformNetlify, nil
	case "vercel":
		return PlatformVercel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, raw)
	}
}

// DisplayName is the human-facing provider name used in error labels.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformPages:
		return "GitHub Pages"
	case PlatformNetlify:
		return "Netlify"
	case PlatformVercel:
		return "Vercel"
	default:
		return string(p)
	}
}

// DeploymentTarget is a provisioned site bound to a repository. State is
// relayed verbatim from the platform.
type DeploymentTarget struct {
	Platform  Platform `json:"platform"`
	SiteName  string   `json:"siteName"`
	SiteID    string   `json:"siteId"`
	LiveURL   string   `json:"liveUrl"`
	AdminURL  string   `json:"adminUrl"`
	DeployURL string   `json:"deployUrl,omitempty"`
	DeployID  string   `json:"deployId,omitempty"`
	State     string   `json:"state,omitempty"`
}

// DeployStatus is the latest build/deploy record reported by a platform.
type DeployStatus struct {
	Platform      Platform  `json:"platform"`
	SiteID        string    `json:"siteId"`
	SiteName      string    `json:"siteName"`
	SiteURL       string    `json:"siteUrl"`
	AdminURL      string    `json:"adminUrl"`
	State         string    `json:"state"`
	DeployID      string    `json:"deployId,omitempty"`
	LastDeployURL string    `json:"lastDeployUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// DeployResult is the single outcome of one orchestration attempt.
type DeployResult struct {
	ID           string            `json:"id"`
	Success      bool              `json:"success"`
	Step         Step              `json:"step"`
	FailedStep   Step              `json:"failedStep,omitempty"`
	RepoURL      string            `json:"repoUrl,omitempty"`
	CloneURL     string            `json:"cloneUrl,omitempty"`
	SiteURL      string            `json:"siteUrl,omitempty"`
	AdminURL     string            `json:"adminUrl,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Target       *DeploymentTarget `json:"target,omitempty"`
	Upload       *UploadReport     `json:"upload,omitempty"`
}

// DeploymentRecord is one row of deployment history.
type DeploymentRecord struct {
	ID           string    `json:"id"`
	Owner        string    `json:"owner"`
	RepoName     string    `json:"repoName"`
	Platform     Platform  `json:"platform"`
	SiteName     string    `json:"siteName,omitempty"`
	SiteID       string    `json:"siteId,omitempty"`
	SiteURL      string    `json:"siteUrl,omitempty"`
	Step         Step      `json:"step"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}
