// Package git reads manifest files from other revisions of a local
// repository using go-git, without shelling out to the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// ErrOutsideWorktree is returned by RelativePath for paths outside the working directory.
var ErrOutsideWorktree = errors.New("path is outside the working directory")

// GoGitRepository is a local repository opened with go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path, searching parent
// directories for the .git directory.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

// TokenAuth returns HTTPS basic auth for a GitHub token, or nil for an empty token.
func TokenAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: token}
}

// Fetch fetches every configured remote. auth is only used for HTTP(S)
// remotes. A remote that is already up to date is not an error.
func (r *GoGitRepository) Fetch(ctx context.Context, auth transport.AuthMethod) error {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return fmt.Errorf("listing remotes: %w", err)
	}

	for _, remote := range remotes {
		cfg := remote.Config()
		opts := &gogit.FetchOptions{RemoteName: cfg.Name}
		if auth != nil && isHTTPRemote(cfg.URLs) {
			opts.Auth = auth
		}

		err := remote.FetchContext(ctx, opts)
		if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			return fmt.Errorf("fetching remote %s: %w", cfg.Name, err)
		}
	}
	return nil
}

func isHTTPRemote(urls []string) bool {
	return len(urls) > 0 && (strings.HasPrefix(urls[0], "https://") || strings.HasPrefix(urls[0], "http://"))
}

// FileAtRevision returns the content of path as committed at rev. rev is any
// revision go-git can resolve, e.g. "remotes/origin/master" or a SHA; path is
// slash-separated and relative to the repository root.
func (r *GoGitRepository) FileAtRevision(rev, path string) ([]byte, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", rev, err)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("getting commit %s: %w", hash, err)
	}

	f, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}

	content, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}
	return []byte(content), nil
}

// RelativePath converts p into a slash-separated path relative to the
// working directory. Relative inputs are taken as already relative.
func (r *GoGitRepository) RelativePath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	rel, err := filepath.Rel(r.workDir, p)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorktree, p)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorktree, p)
	}
	return filepath.ToSlash(rel), nil
}
