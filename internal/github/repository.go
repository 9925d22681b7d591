package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// Repository reads pull requests and files of one GitHub repository.
type Repository struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewRepository creates a new Repository.
func NewRepository(client *gh.Client, owner, repo string) *Repository {
	return &Repository{client: client, owner: owner, repo: repo}
}

// Path returns "github.com/owner/repo".
func (r *Repository) Path() string {
	return fmt.Sprintf("github.com/%s/%s", r.owner, r.repo)
}

// PullRequest fetches pull request metadata.
func (r *Repository) PullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := r.client.PullRequests.Get(ctx, r.owner, r.repo, number)
	if err != nil {
		return nil, fmt.Errorf("getting pull request #%d: %w", number, err)
	}
	return convertPullRequest(pr), nil
}

// FetchFileContent fetches a file's content at ref. An empty ref reads the
// repository's default branch.
func (r *Repository) FetchFileContent(ctx context.Context, ref, path string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}

	content, _, _, err := r.client.Repositories.GetContents(ctx, r.owner, r.repo, path, opts)
	if IsNotFoundError(err) {
		return "", fmt.Errorf("file %s not found at %s: %w", path, ref, err)
	}
	if err != nil {
		return "", fmt.Errorf("fetching file %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("file %s not found", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding file content: %w", err)
	}
	return decoded, nil
}
