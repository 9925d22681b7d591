package config

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/pattern"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Source != nil {
		dst.Source = src.Source
	}
	mergePattern(&dst.MajorPattern, src.MajorPattern)
	mergePattern(&dst.MinorPattern, src.MinorPattern)
	mergePattern(&dst.PatchPattern, src.PatchPattern)
	if src.ManifestPath != nil {
		dst.ManifestPath = src.ManifestPath
	}
	if src.DefaultBranch != nil {
		dst.DefaultBranch = src.DefaultBranch
	}
	if src.PreviousVersion != nil {
		dst.PreviousVersion = src.PreviousVersion
	}
	if src.PullRequest != nil {
		dst.PullRequest = src.PullRequest
	}
	if src.Fetch != nil {
		dst.Fetch = src.Fetch
	}
	if src.BaseFrom != nil {
		dst.BaseFrom = src.BaseFrom
	}
}

// mergePattern treats an empty pattern as unset: an empty regex would match every text.
func mergePattern(dst **string, src *string) {
	if src != nil && *src != "" {
		*dst = src
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	for _, rule := range cfg.BumpMapping() {
		if _, err := pattern.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("%s-pattern: %w", rule.Kind, err)
		}
	}

	if *cfg.ManifestPath == "" {
		return fmt.Errorf("manifest-path must not be empty")
	}

	if *cfg.PullRequest < 0 {
		return fmt.Errorf("invalid pull-request %d", *cfg.PullRequest)
	}

	switch *cfg.BaseFrom {
	case BaseFromGit, BaseFromAPI:
	default:
		return fmt.Errorf("invalid base-from %q: expected %s or %s", *cfg.BaseFrom, BaseFromGit, BaseFromAPI)
	}

	if *cfg.BaseFrom == BaseFromGit && *cfg.DefaultBranch == "" {
		return fmt.Errorf("default-branch must not be empty")
	}

	return nil
}
