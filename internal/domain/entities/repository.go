package entities

import (
	"fmt"
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

const gitHubHost = "github.com"

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// File is re-exported from gitforge.
type File = gitforgeEntities.File

// RepositoryHandle identifies a remote repository that receives the rendered site.
// Organization holds the owner, RemoteURL the HTTPS clone URL, and
// DefaultBranch the plain branch name (no refs/heads/ prefix).
type RepositoryHandle struct {
	Repository
	HTMLURL string
}

// NewRepositoryHandle builds a handle with the URLs GitHub would report.
func NewRepositoryHandle(owner, name, defaultBranch string) RepositoryHandle {
	return RepositoryHandle{
		Repository: Repository{
			Name:          name,
			Organization:  owner,
			DefaultBranch: defaultBranch,
			RemoteURL:     GitHubCloneURL(owner, name),
			ProviderName:  "github",
		},
		HTMLURL: GitHubRepoURL(owner, name),
	}
}

func (h RepositoryHandle) Owner() string    { return h.Organization }
func (h RepositoryHandle) CloneURL() string { return h.RemoteURL }
func (h RepositoryHandle) FullName() string { return h.Organization + "/" + h.Name }

// Branch returns the default branch, falling back to "main".
func (h RepositoryHandle) Branch() string {
	branch := strings.TrimPrefix(h.DefaultBranch, "refs/heads/")
	if branch == "" {
		return "main"
	}
	return branch
}

// FileRecord is what the remote reports for a single path. ObjectID carries
// the content sha; an empty sha means the path does not exist yet.
type FileRecord struct {
	File
	Branch string
}

func (r FileRecord) Exists() bool { return r.ObjectID != "" }

// GitHubRepoURL returns the browser URL of a repository.
func GitHubRepoURL(owner, name string) string {
	return fmt.Sprintf("https://%s/%s/%s", gitHubHost, owner, name)
}

// GitHubCloneURL returns the HTTPS clone URL of a repository.
func GitHubCloneURL(owner, name string) string {
	return GitHubRepoURL(owner, name) + ".git"
}

// ParseRepoURL extracts owner and repository name from an HTTPS or SSH
// GitHub URL, or from a bare "owner/name" pair.
func ParseRepoURL(rawURL string) (string, string, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	if cleaned == "" {
		return "", "", fmt.Errorf("%w: repository URL is empty", ErrValidation)
	}

	var pathPart string
	switch {
	case strings.HasPrefix(cleaned, "git@"):
		_, after, ok := strings.Cut(cleaned, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: invalid SSH URL: %s", ErrValidation, rawURL)
		}
		pathPart = after
	case strings.Contains(cleaned, gitHubHost):
		_, after, _ := strings.Cut(cleaned, gitHubHost)
		pathPart = strings.TrimPrefix(after, "/")
	case !strings.Contains(cleaned, "://"):
		pathPart = cleaned
	default:
		return "", "", fmt.Errorf("%w: unsupported repository URL: %s", ErrValidation, rawURL)
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("%w: cannot extract owner/repo from URL: %s", ErrValidation, rawURL)
	}
	return segments[0], segments[1], nil
}

// PagesURL returns the GitHub Pages address of a repository.
func PagesURL(owner, name string) string {
	return fmt.Sprintf("https://%s.github.io/%s", owner, name)
}

// PagesAdminURL returns the Pages settings page of a repository.
func PagesAdminURL(owner, name string) string {
	return GitHubRepoURL(owner, name) + "/settings/pages"
}
