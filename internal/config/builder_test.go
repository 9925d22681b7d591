package config

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/bump"

	"github.com/stretchr/testify/require"
)

func TestBuilder_NoOverrides(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, CreateDefaultConfiguration(), cfg)
}

func TestBuilder_Overrides(t *testing.T) {
	override := &Config{
		Source:       sourcePtr(SourceLabel),
		MajorPattern: stringPtr("breaking"),
		PullRequest:  intPtr(42),
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Equal(t, SourceLabel, *cfg.Source)
	require.Equal(t, "breaking", *cfg.MajorPattern)
	require.Equal(t, 42, *cfg.PullRequest)
	// Defaults still present for unoverridden fields
	require.Equal(t, DefaultMinorPattern, *cfg.MinorPattern)
	require.Equal(t, "package.json", *cfg.ManifestPath)
}

func TestBuilder_LaterOverrideWins(t *testing.T) {
	file := &Config{PatchPattern: stringPtr("fix"), ManifestPath: stringPtr("a.json")}
	inputs := &Config{PatchPattern: stringPtr("bug")}
	flags := &Config{ManifestPath: stringPtr("b.json")}

	cfg, err := NewBuilder().Add(file).Add(inputs).Add(flags).Build()
	require.NoError(t, err)
	require.Equal(t, "bug", *cfg.PatchPattern)
	require.Equal(t, "b.json", *cfg.ManifestPath)
}

func TestBuilder_NilOverrideIgnored(t *testing.T) {
	cfg, err := NewBuilder().Add(nil).Build()
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestBuilder_DoesNotMutateOverride(t *testing.T) {
	override := &Config{MajorPattern: stringPtr("breaking")}
	_, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Nil(t, override.MinorPattern)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		override *Config
		wantErr  string
	}{
		{"invalid major", &Config{MajorPattern: stringPtr("/(/")}, "major-pattern"},
		{"invalid plain minor", &Config{MinorPattern: stringPtr("feat[")}, "minor-pattern"},
		{"duplicate flags", &Config{PatchPattern: stringPtr("/fix/gg")}, "patch-pattern"},
		{"empty manifest", &Config{ManifestPath: stringPtr("")}, "manifest-path"},
		{"negative pr", &Config{PullRequest: intPtr(-1)}, "invalid pull-request"},
		{"bad base-from", &Config{BaseFrom: stringPtr("svn")}, "invalid base-from"},
		{"empty default branch", &Config{DefaultBranch: stringPtr("")}, "default-branch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.override).Build()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilder_EmptyDefaultBranchAllowedForAPI(t *testing.T) {
	_, err := NewBuilder().Add(&Config{
		DefaultBranch: stringPtr(""),
		BaseFrom:      stringPtr(BaseFromAPI),
	}).Build()
	require.NoError(t, err)
}

func TestBuilder_EmptyPatternKeepsDefault(t *testing.T) {
	file, err := LoadFromBytes([]byte("major-pattern: \"\"\nminor-pattern: \"\"\n"))
	require.NoError(t, err)
	flags := &Config{PatchPattern: stringPtr("")}

	cfg, err := NewBuilder().Add(file).Add(flags).Build()
	require.NoError(t, err)
	require.Equal(t, DefaultMajorPattern, *cfg.MajorPattern)
	require.Equal(t, DefaultMinorPattern, *cfg.MinorPattern)
	require.Equal(t, DefaultPatchPattern, *cfg.PatchPattern)

	triggered, err := bump.Resolve([]string{"fix: typo"}, cfg.BumpMapping())
	require.NoError(t, err)
	require.Equal(t, []string{"patch"}, triggered)
}

func TestBuilder_EmptyPatternDoesNotClearEarlierLayer(t *testing.T) {
	file := &Config{MajorPattern: stringPtr("breaking")}
	flags := &Config{MajorPattern: stringPtr("")}

	cfg, err := NewBuilder().Add(file).Add(flags).Build()
	require.NoError(t, err)
	require.Equal(t, "breaking", *cfg.MajorPattern)
}
