package config

import (
	"fmt"
	"strconv"
	"strings"
)

// FromInputs builds an override from CI action inputs. lookup returns the raw
// value of an input by its snake_case name, or "" when unset; unset inputs
// leave the field nil so lower layers show through.
func FromInputs(lookup func(name string) string) (*Config, error) {
	cfg := &Config{}

	if v := lookup("source"); v != "" {
		s, err := ParseSource(v)
		if err != nil {
			return nil, err
		}
		cfg.Source = &s
	}

	strInputs := []struct {
		name string
		dst  **string
	}{
		{"major_pattern", &cfg.MajorPattern},
		{"minor_pattern", &cfg.MinorPattern},
		{"patch_pattern", &cfg.PatchPattern},
		{"package_json_path", &cfg.ManifestPath},
		{"default_branch", &cfg.DefaultBranch},
		{"previous_version", &cfg.PreviousVersion},
		{"base_from", &cfg.BaseFrom},
	}
	for _, in := range strInputs {
		if v := lookup(in.name); v != "" {
			*in.dst = stringPtr(v)
		}
	}

	if v := strings.TrimSpace(lookup("pull_request")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid pull_request input %q: %w", v, err)
		}
		cfg.PullRequest = &n
	}

	if v := strings.TrimSpace(lookup("fetch")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid fetch input %q: %w", v, err)
		}
		cfg.Fetch = &b
	}

	return cfg, nil
}
