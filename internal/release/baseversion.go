package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/manifest"
)

// BaseVersionReader returns the manifest version on the default branch.
type BaseVersionReader interface {
	BaseVersion(ctx context.Context, path string) (string, error)
}

// RevisionReader is satisfied by *git.GoGitRepository.
type RevisionReader interface {
	FileAtRevision(rev, path string) ([]byte, error)
}

// GitBaseVersion reads the manifest committed at Revision in the local clone.
type GitBaseVersion struct {
	Repo     RevisionReader
	Revision string
}

func (g GitBaseVersion) BaseVersion(_ context.Context, path string) (string, error) {
	data, err := g.Repo.FileAtRevision(g.Revision, path)
	if err != nil {
		return "", fmt.Errorf("reading default branch manifest: %w", err)
	}
	return versionOf(data, g.Revision+":"+path)
}

// ContentFetcher is satisfied by *github.Repository.
type ContentFetcher interface {
	FetchFileContent(ctx context.Context, ref, path string) (string, error)
}

// APIBaseVersion reads the manifest at Ref through the GitHub contents API.
type APIBaseVersion struct {
	Repo ContentFetcher
	Ref  string
}

func (a APIBaseVersion) BaseVersion(ctx context.Context, path string) (string, error) {
	content, err := a.Repo.FetchFileContent(ctx, a.Ref, path)
	if err != nil {
		return "", fmt.Errorf("reading default branch manifest: %w", err)
	}
	return versionOf([]byte(content), a.Ref+":"+path)
}

func versionOf(data []byte, location string) (string, error) {
	doc, err := manifest.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", location, err)
	}
	v, err := doc.Version()
	if err != nil {
		return "", fmt.Errorf("%s: %w", location, err)
	}
	return v, nil
}

// BranchFromRevision strips remote-tracking and ref prefixes from a git
// revision: "remotes/origin/master" and "refs/heads/master" both give "master".
func BranchFromRevision(rev string) string {
	switch {
	case strings.HasPrefix(rev, "refs/remotes/"):
		rev = strings.TrimPrefix(rev, "refs/remotes/")
		return afterFirstSlash(rev)
	case strings.HasPrefix(rev, "remotes/"):
		rev = strings.TrimPrefix(rev, "remotes/")
		return afterFirstSlash(rev)
	case strings.HasPrefix(rev, "refs/heads/"):
		return strings.TrimPrefix(rev, "refs/heads/")
	}
	return rev
}

func afterFirstSlash(s string) string {
	if _, rest, ok := strings.Cut(s, "/"); ok {
		return rest
	}
	return s
}
