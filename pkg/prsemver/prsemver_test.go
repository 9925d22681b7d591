package prsemver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-prsemver/pkg/prsemver"
)

func TestResolve_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    string
	}{
		{"major", []string{"Major: rewrite"}, "major"},
		{"release", []string{"release v2"}, "major"},
		{"minor", []string{"feat: add export"}, "minor"},
		{"patch", []string{"FIX: crash"}, "patch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := prsemver.Resolve(tt.sources, prsemver.DefaultPatterns())
			require.NoError(t, err)
			require.Equal(t, tt.want, d.ReleaseType)
			require.Empty(t, d.Warning)
		})
	}
}

func TestResolve_EmptyPatternsUseDefaults(t *testing.T) {
	d, err := prsemver.Resolve([]string{"feat: x"}, prsemver.Patterns{})
	require.NoError(t, err)
	require.Equal(t, "minor", d.ReleaseType)
}

func TestResolve_CustomPatterns(t *testing.T) {
	d, err := prsemver.Resolve([]string{"breaking", "enhancement"}, prsemver.Patterns{
		Major: "/^breaking$/",
		Minor: "enhancement",
	})
	require.NoError(t, err)
	require.Equal(t, "major", d.ReleaseType)
	require.Equal(t, []string{"major", "minor"}, d.Triggered)
	require.Equal(t, "More than one version label found on PR. Using major", d.Warning)
}

func TestResolve_Errors(t *testing.T) {
	_, err := prsemver.Resolve([]string{"docs: readme"}, prsemver.DefaultPatterns())
	require.ErrorIs(t, err, prsemver.ErrNoBumpTriggered)

	_, err = prsemver.Resolve([]string{"x"}, prsemver.Patterns{Major: "/[/"})
	var perr *prsemver.PatternError
	require.True(t, errors.As(err, &perr))
}

func TestNext(t *testing.T) {
	next, d, err := prsemver.Next("1.2.3", []string{"fix: typo"}, prsemver.DefaultPatterns())
	require.NoError(t, err)
	require.Equal(t, "1.2.4", next)
	require.Equal(t, "patch", d.ReleaseType)

	next, _, err = prsemver.Next("v0.9.1", []string{"major"}, prsemver.DefaultPatterns())
	require.NoError(t, err)
	require.Equal(t, "1.0.0", next)

	_, d, err = prsemver.Next("not-semver", []string{"feat"}, prsemver.DefaultPatterns())
	require.ErrorIs(t, err, prsemver.ErrInvalidVersion)
	require.NotNil(t, d)
}

func TestResolvePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/myorg/myrepo/pulls/12", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"number": 12,
			"title":  "chore: bump deps",
			"labels": []map[string]interface{}{{"name": "minor"}},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	opts := prsemver.PullRequestOptions{
		Owner:    "myorg",
		Repo:     "myrepo",
		Number:   12,
		Source:   "label",
		Token:    "test-token",
		BaseURL:  server.URL,
		Patterns: prsemver.Patterns{Minor: "/^minor$/"},
	}

	d, err := prsemver.ResolvePullRequest(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, "minor", d.ReleaseType)

	opts.Source = "title"
	_, err = prsemver.ResolvePullRequest(context.Background(), opts)
	require.ErrorIs(t, err, prsemver.ErrNoBumpTriggered)
}

func TestResolvePullRequest_Validation(t *testing.T) {
	_, err := prsemver.ResolvePullRequest(context.Background(), prsemver.PullRequestOptions{Number: 1})
	require.EqualError(t, err, "owner and repo are required")

	_, err = prsemver.ResolvePullRequest(context.Background(), prsemver.PullRequestOptions{Owner: "o", Repo: "r"})
	require.EqualError(t, err, "pull request number is required")

	_, err = prsemver.ResolvePullRequest(context.Background(), prsemver.PullRequestOptions{Owner: "o", Repo: "r", Number: 1, Source: "body"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid source")
}
