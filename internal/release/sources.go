package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/config"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/github"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/logging"
)

// SourceProvider yields the candidate strings matched against the bump patterns.
type SourceProvider interface {
	Sources(ctx context.Context, source config.Source) ([]string, error)
}

// StaticSources serves a title and labels given on the command line.
type StaticSources struct {
	Title  string
	Labels []string
}

func (s StaticSources) Sources(_ context.Context, source config.Source) ([]string, error) {
	if source == config.SourceLabel {
		return append([]string{}, s.Labels...), nil
	}
	return []string{s.Title}, nil
}

// PullRequestFetcher is satisfied by *github.Repository.
type PullRequestFetcher interface {
	PullRequest(ctx context.Context, number int) (*github.PullRequest, error)
}

// PullRequestSources reads the title or labels of a pull request.
type PullRequestSources struct {
	Fetcher PullRequestFetcher
	Number  int
}

func (p PullRequestSources) Sources(ctx context.Context, source config.Source) ([]string, error) {
	if p.Number <= 0 {
		return nil, errors.New("could not retrieve pr: no pull request number")
	}

	pr, err := p.Fetcher.PullRequest(ctx, p.Number)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve pr: %w", err)
	}

	log := logging.Get(ctx)
	log.Info().
		Int("number", pr.Number).
		Str("state", pr.State).
		Str("title", pr.Title).
		Msg("pr meta")
	log.Debug().Strs("labels", pr.Labels).Str("base", pr.BaseRef).Msg("pr details")

	return pr.Sources(source), nil
}
