package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
	"github.com/rios0rios0/folio/internal/infrastructure/repositories/httpclient"
)

const (
	providerName    = "github"
	repoDescription = "Professional portfolio website generated with Portfolio Generator"
)

// Clients builds an authenticated go-github client per token.
type Clients struct {
	factory *httpclient.Factory
	baseURL *url.URL
}

// NewClients creates a client builder for the configured GitHub API.
func NewClients(factory *httpclient.Factory, settings *entities.Settings) (*Clients, error) {
	raw := settings.GitHub.APIURL
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", settings.GitHub.APIURL, err)
	}
	return &Clients{factory: factory, baseURL: baseURL}, nil
}

// For returns a client that authenticates with token.
func (c *Clients) For(token string) *gh.Client {
	client := gh.NewClient(c.factory.Client(token))
	client.BaseURL = c.baseURL
	if ua := c.factory.UserAgent(); ua != "" {
		client.UserAgent = ua
	}
	return client
}

// GitHubSourceRepository implements repositories.SourceRepository for GitHub.
type GitHubSourceRepository struct {
	clients       *Clients
	defaultBranch string
}

// NewGitHubSourceRepository creates the GitHub repository client.
func NewGitHubSourceRepository(clients *Clients, settings *entities.Settings) *GitHubSourceRepository {
	return &GitHubSourceRepository{clients: clients, defaultBranch: settings.GitHub.DefaultBranch}
}

// EnsureRepository creates a public, auto-initialised repository for the
// authenticated user. A 422 means it already exists; it is then fetched.
func (p *GitHubSourceRepository) EnsureRepository(
	ctx context.Context,
	owner, name, token string,
) (entities.RepositoryHandle, error) {
	client := p.clients.For(token)
	created, resp, err := client.Repositories.Create(ctx, "", &gh.Repository{
		Name:        gh.Ptr(name),
		Description: gh.Ptr(repoDescription),
		Homepage:    gh.Ptr(entities.PagesURL(owner, name)),
		Private:     gh.Ptr(false),
		AutoInit:    gh.Ptr(true),
	})
	if err == nil {
		logger.Infof("Created repository %s", created.GetFullName())
		return p.toHandle(created, owner), nil
	}
	if resp == nil || resp.StatusCode != http.StatusUnprocessableEntity {
		return entities.RepositoryHandle{}, fmt.Errorf("failed to create repository %s/%s: %w", owner, name, toAPIError(err))
	}

	logger.Infof("Repository %s/%s already exists, reusing it", owner, name)
	return p.GetRepository(ctx, owner, name, token)
}

// GetRepository fetches owner/name.
func (p *GitHubSourceRepository) GetRepository(
	ctx context.Context,
	owner, name, token string,
) (entities.RepositoryHandle, error) {
	repo, resp, err := p.clients.For(token).Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return entities.RepositoryHandle{}, fmt.Errorf("%w: repository %s/%s", entities.ErrNotFound, owner, name)
		}
		return entities.RepositoryHandle{}, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, toAPIError(err))
	}
	return p.toHandle(repo, owner), nil
}

// GetFile looks up path on the handle's default branch. A 404 is not an error:
// it yields a record without a sha, meaning the file must be created.
func (p *GitHubSourceRepository) GetFile(
	ctx context.Context,
	handle entities.RepositoryHandle,
	path, token string,
) (entities.FileRecord, error) {
	record := entities.FileRecord{File: entities.File{Path: path}, Branch: handle.Branch()}

	fileContent, _, resp, err := p.clients.For(token).Repositories.GetContents(
		ctx, handle.Owner(), handle.Name, path,
		&gh.RepositoryContentGetOptions{Ref: handle.Branch()},
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return record, nil
		}
		return record, fmt.Errorf("failed to get file %q: %w", path, toAPIError(err))
	}
	if fileContent == nil {
		return record, fmt.Errorf("path %q is a directory, not a file", path)
	}

	record.ObjectID = fileContent.GetSHA()
	return record, nil
}

// PutFile creates the file when prior has no sha, otherwise updates it.
func (p *GitHubSourceRepository) PutFile(
	ctx context.Context,
	handle entities.RepositoryHandle,
	prior entities.FileRecord,
	content, token string,
) (string, error) {
	branch := prior.Branch
	if branch == "" {
		branch = handle.Branch()
	}
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(entities.CommitMessage(prior.Path, prior.Exists())),
		Content: []byte(content),
		Branch:  gh.Ptr(branch),
	}

	client := p.clients.For(token)
	var (
		written *gh.RepositoryContentResponse
		err     error
	)
	if prior.Exists() {
		opts.SHA = gh.Ptr(prior.ObjectID)
		written, _, err = client.Repositories.UpdateFile(ctx, handle.Owner(), handle.Name, prior.Path, opts)
	} else {
		written, _, err = client.Repositories.CreateFile(ctx, handle.Owner(), handle.Name, prior.Path, opts)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write file %q: %w", prior.Path, toAPIError(err))
	}
	return written.GetContent().GetSHA(), nil
}

// CheckToken returns the login of the token's owner.
func (p *GitHubSourceRepository) CheckToken(ctx context.Context, token string) (string, error) {
	user, _, err := p.clients.For(token).Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to validate GitHub token: %w", toAPIError(err))
	}
	return user.GetLogin(), nil
}

func (p *GitHubSourceRepository) toHandle(r *gh.Repository, owner string) entities.RepositoryHandle {
	if login := r.GetOwner().GetLogin(); login != "" {
		owner = login
	}
	branch := r.GetDefaultBranch()
	if branch == "" {
		branch = p.defaultBranch
	}

	handle := entities.NewRepositoryHandle(owner, r.GetName(), branch)
	if r.GetID() != 0 {
		handle.ID = strconv.FormatInt(r.GetID(), 10)
	}
	if cloneURL := r.GetCloneURL(); cloneURL != "" {
		handle.RemoteURL = cloneURL
	}
	if htmlURL := r.GetHTMLURL(); htmlURL != "" {
		handle.HTMLURL = htmlURL
	}
	handle.SSHURL = r.GetSSHURL()
	return handle
}

// toAPIError converts a go-github error response into an entities.APIError
// carrying GitHub's own message.
func toAPIError(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		message := ghErr.Message
		if len(ghErr.Errors) > 0 && ghErr.Errors[0].Message != "" {
			message += ": " + ghErr.Errors[0].Message
		}
		return &entities.APIError{
			Provider:   providerName,
			StatusCode: ghErr.Response.StatusCode,
			Message:    message,
		}
	}
	return err
}
