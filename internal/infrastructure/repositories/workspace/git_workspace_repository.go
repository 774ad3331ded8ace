package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

const (
	gitDir        = ".git"
	remoteOrigin  = "origin"
	commitMessage = "Add generated portfolio site"
	authorName    = "Portfolio Generator"
	authorEmail   = "portfolio-generator@users.noreply.github.com"
	maxFileBytes  = 10 << 20
)

// GitWorkspaceRepository implements repositories.WorkspaceRepository on the
// local filesystem, using go-git for the repository operations.
type GitWorkspaceRepository struct {
	branch string
	now    entities.Clock
}

// NewGitWorkspaceRepository creates the local workspace.
func NewGitWorkspaceRepository(settings *entities.Settings, now entities.Clock) *GitWorkspaceRepository {
	return &GitWorkspaceRepository{branch: settings.GitHub.DefaultBranch, now: now}
}

// Export writes every file under dir and, when commit is set, commits them to
// a Git repository at dir (created on the default branch when missing).
func (r *GitWorkspaceRepository) Export(
	ctx context.Context,
	dir string,
	files entities.FileSet,
	commit bool,
) (string, error) {
	if err := files.Validate(); err != nil {
		return "", err
	}
	for _, path := range files.Paths() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(target, []byte(files[path]), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if !commit {
		return "", nil
	}

	repo, err := r.openOrInit(dir)
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	for _, path := range files.Paths() {
		if _, err = worktree.Add(path); err != nil {
			return "", fmt.Errorf("failed to stage %s: %w", path, err)
		}
	}

	hash, err := worktree.Commit(commitMessage, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: r.now()},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		head, headErr := repo.Head()
		if headErr != nil {
			return "", fmt.Errorf("failed to read HEAD: %w", headErr)
		}
		logger.Infof("Nothing changed in %s, keeping commit %s", dir, head.Hash())
		return head.Hash().String(), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	logger.Infof("Committed %d files in %s as %s", len(files), dir, hash)
	return hash.String(), nil
}

// Load reads every regular file under dir except the .git directory.
func (r *GitWorkspaceRepository) Load(ctx context.Context, dir string) (entities.FileSet, error) {
	files := entities.FileSet{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if d.Name() == gitDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxFileBytes {
			return fmt.Errorf("%w: %s is larger than %d bytes", entities.ErrValidation, path, maxFileBytes)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read site directory %s: %w", dir, err)
	}
	if err = files.Validate(); err != nil {
		return nil, err
	}
	return files, nil
}

// Origin returns the first URL of the "origin" remote.
func (r *GitWorkspaceRepository) Origin(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open Git repository: %w", err)
	}
	remote, err := repo.Remote(remoteOrigin)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", remoteOrigin, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteOrigin)
	}
	return urls[0], nil
}

func (r *GitWorkspaceRepository) openOrInit(dir string) (*git.Repository, error) {
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(r.branch)},
	})
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open Git repository at %s: %w", dir, err)
	}
	return repo, nil
}
