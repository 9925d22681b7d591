// Package prsemver provides a public Go API for deciding a semantic version
// bump from pull request titles or labels.
//
// Basic usage:
//
//	next, decision, err := prsemver.Next("1.2.3", []string{"feat: add export"}, prsemver.DefaultPatterns())
//	fmt.Println(decision.ReleaseType, next) // "minor 1.3.0"
//
//	decision, err := prsemver.ResolvePullRequest(ctx, prsemver.PullRequestOptions{
//	    Owner:  "myorg",
//	    Repo:   "myrepo",
//	    Number: 42,
//	    Source: "label",
//	    Token:  os.Getenv("GITHUB_TOKEN"),
//	})
package prsemver

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/bump"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/config"
	ghprovider "github.com/MyCarrier-DevOps/go-prsemver/internal/github"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/pattern"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/semver"
)

// ErrNoBumpTriggered is returned when no pattern matches any source string.
var ErrNoBumpTriggered = bump.ErrNoBumpTriggered

// ErrInvalidVersion is returned by Next when the previous version is not valid semver.
var ErrInvalidVersion = semver.ErrInvalidVersion

// PatternError reports a pattern that failed to compile.
type PatternError = pattern.CompilationError

// Patterns holds the trigger pattern for each bump kind. A pattern is either
// "/body/flags" (flags from g, i, m, y) or a bare regular expression.
// Empty fields fall back to the defaults.
type Patterns struct {
	Major string
	Minor string
	Patch string
}

// DefaultPatterns returns /^(major|release)/i, /^feat/i and /^fix/i.
func DefaultPatterns() Patterns {
	return Patterns{
		Major: config.DefaultMajorPattern,
		Minor: config.DefaultMinorPattern,
		Patch: config.DefaultPatchPattern,
	}
}

func (p Patterns) mapping() bump.Mapping {
	def := DefaultPatterns()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return bump.Mapping{
		{Kind: "major", Pattern: pick(p.Major, def.Major)},
		{Kind: "minor", Pattern: pick(p.Minor, def.Minor)},
		{Kind: "patch", Pattern: pick(p.Patch, def.Patch)},
	}
}

// Decision is the selected release type.
type Decision struct {
	// ReleaseType is "major", "minor" or "patch".
	ReleaseType string
	// Triggered lists every matching kind, major first.
	Triggered []string
	// Warning is set when more than one kind matched.
	Warning string
}

// Resolve decides the release type for the given source strings.
func Resolve(sources []string, patterns Patterns) (*Decision, error) {
	triggered, err := bump.Resolve(sources, patterns.mapping())
	if err != nil {
		return nil, err
	}
	d, err := bump.Select(triggered)
	if err != nil {
		return nil, err
	}
	return &Decision{
		ReleaseType: d.ReleaseType,
		Triggered:   d.Triggered,
		Warning:     d.Warning(),
	}, nil
}

// Next resolves the release type and applies it to previousVersion.
func Next(previousVersion string, sources []string, patterns Patterns) (string, *Decision, error) {
	d, err := Resolve(sources, patterns)
	if err != nil {
		return "", nil, err
	}
	next, err := semver.Increment(previousVersion, d.ReleaseType)
	if err != nil {
		return "", d, err
	}
	return next, d, nil
}

// PullRequestOptions configures resolution against a GitHub pull request.
type PullRequestOptions struct {
	// Owner and Repo identify the repository (required).
	Owner string
	Repo  string

	// Number is the pull request number (required).
	Number int

	// Source is "title" (default) or "label".
	Source string

	Patterns Patterns

	// Token is a GitHub token. Falls back to GITHUB_TOKEN.
	Token string

	// AppID and AppKeyPath authenticate as a GitHub App.
	AppID      int64
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string
}

// ResolvePullRequest fetches a pull request and decides its release type.
func ResolvePullRequest(ctx context.Context, opts PullRequestOptions) (*Decision, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}
	if opts.Number <= 0 {
		return nil, errors.New("pull request number is required")
	}

	source, err := config.ParseSource(opts.Source)
	if err != nil {
		return nil, err
	}

	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	pr, err := ghprovider.NewRepository(client, opts.Owner, opts.Repo).PullRequest(ctx, opts.Number)
	if err != nil {
		return nil, err
	}

	return Resolve(pr.Sources(source), opts.Patterns)
}
