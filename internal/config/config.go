// Package config provides YAML configuration loading, defaults, and layered
// override merging for prsemver.
package config

import "github.com/MyCarrier-DevOps/go-prsemver/internal/bump"

// Config is the root configuration for prsemver. All fields are pointers to
// support merge semantics during configuration building.
type Config struct {
	Source          *Source `yaml:"source" json:"source"`
	MajorPattern    *string `yaml:"major-pattern" json:"major-pattern"`
	MinorPattern    *string `yaml:"minor-pattern" json:"minor-pattern"`
	PatchPattern    *string `yaml:"patch-pattern" json:"patch-pattern"`
	ManifestPath    *string `yaml:"manifest-path" json:"manifest-path"`
	DefaultBranch   *string `yaml:"default-branch" json:"default-branch"`
	PreviousVersion *string `yaml:"previous-version" json:"previous-version"`
	PullRequest     *int    `yaml:"pull-request" json:"pull-request"`
	Fetch           *bool   `yaml:"fetch" json:"fetch"`
	BaseFrom        *string `yaml:"base-from" json:"base-from"`
}

// Base-version readers selectable through base-from.
const (
	BaseFromGit = "git"
	BaseFromAPI = "api"
)

// BumpMapping returns the configured patterns in fixed precedence order:
// major, then minor, then patch. Call on a built configuration.
func (c *Config) BumpMapping() bump.Mapping {
	return bump.Mapping{
		{Kind: "major", Pattern: deref(c.MajorPattern)},
		{Kind: "minor", Pattern: deref(c.MinorPattern)},
		{Kind: "patch", Pattern: deref(c.PatchPattern)},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
