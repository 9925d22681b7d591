package github

import (
	gh "github.com/google/go-github/v68/github"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/config"
)

// PullRequest is the pull request metadata used for bump resolution.
type PullRequest struct {
	Number  int
	State   string
	Title   string
	Body    string
	BaseRef string
	Labels  []string
}

// Sources returns the candidate strings for the given source: the title as a
// single element, or the label names in the order GitHub lists them.
func (pr *PullRequest) Sources(source config.Source) []string {
	switch source {
	case config.SourceLabel:
		return append([]string{}, pr.Labels...)
	default:
		return []string{pr.Title}
	}
}

func convertPullRequest(pr *gh.PullRequest) *PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}
	return &PullRequest{
		Number:  pr.GetNumber(),
		State:   pr.GetState(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		BaseRef: pr.GetBase().GetRef(),
		Labels:  labels,
	}
}
