// Package actions implements the GitHub Actions runner conventions prsemver
// relies on: action inputs, the event payload, step outputs and annotations.
package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Environment holds the runner variables read at startup.
type Environment struct {
	// Actions is true when running inside GitHub Actions.
	Actions    bool
	Workspace  string
	Repository string
	EventPath  string
	OutputPath string
	// Debug is set when step debug logging is enabled.
	Debug bool
}

// LoadEnvironment reads the runner variables from the process environment.
func LoadEnvironment() Environment {
	return Environment{
		Actions:    os.Getenv("GITHUB_ACTIONS") == "true",
		Workspace:  os.Getenv("GITHUB_WORKSPACE"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
		OutputPath: os.Getenv("GITHUB_OUTPUT"),
		Debug:      os.Getenv("RUNNER_DEBUG") == "1",
	}
}

// Input returns the value of an action input, trimmed of surrounding
// whitespace. Names are matched the way the runner exports them:
// upper-cased with spaces replaced by underscores.
func Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

// OwnerRepo splits "owner/name".
func OwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return parts[0], parts[1], nil
}

type eventPayload struct {
	Number      int `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
		Base   struct {
			Ref string `json:"ref"`
		} `json:"base"`
	} `json:"pull_request"`
	Issue *struct {
		Number int `json:"number"`
	} `json:"issue"`
}

// Event is the subset of the triggering event prsemver uses.
type Event struct {
	Number  int
	BaseRef string
}

// ReadEvent parses the event payload at path.
func ReadEvent(fs afero.Fs, path string) (Event, error) {
	if path == "" {
		return Event{}, fmt.Errorf("no event payload: GITHUB_EVENT_PATH is not set")
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Event{}, fmt.Errorf("reading event payload: %w", err)
	}

	var p eventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Event{}, fmt.Errorf("parsing event payload: %w", err)
	}

	var ev Event
	switch {
	case p.PullRequest != nil && p.PullRequest.Number != 0:
		ev.Number = p.PullRequest.Number
		ev.BaseRef = p.PullRequest.Base.Ref
	case p.Issue != nil && p.Issue.Number != 0:
		ev.Number = p.Issue.Number
	default:
		ev.Number = p.Number
	}
	if ev.Number == 0 {
		return Event{}, fmt.Errorf("event payload does not reference a pull request")
	}
	return ev, nil
}
