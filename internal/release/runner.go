// Package release runs a version bump for a pull request: it resolves the
// release type from the PR's title or labels, increments the default-branch
// version and writes the result into the local manifest.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/actions"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/bump"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/config"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/logging"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/manifest"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/semver"
)

// Options controls a single run.
type Options struct {
	Source  config.Source
	Mapping bump.Mapping

	// ManifestPath is the local manifest on the filesystem.
	ManifestPath string
	// BaseManifestPath is the same manifest relative to the repository root,
	// as passed to the BaseVersionReader.
	BaseManifestPath string

	// PreviousVersion replaces both manifest versions when set.
	PreviousVersion string
	DryRun          bool
}

// Result holds the versions computed by a run.
type Result struct {
	PreviousVersionMaster string   `json:"previous_version_master"`
	PreviousVersion       string   `json:"previous_version"`
	NewVersion            string   `json:"new_version"`
	ReleaseType           string   `json:"release_type"`
	Triggered             []string `json:"bump_types"`
	Sources               []string `json:"sources"`
	Written               bool     `json:"written"`
}

// Runner performs version bumps.
type Runner struct {
	fs        afero.Fs
	sources   SourceProvider
	base      BaseVersionReader
	annotator *actions.Annotator
}

// NewRunner creates a Runner. annotator may be nil.
func NewRunner(fs afero.Fs, sources SourceProvider, base BaseVersionReader, annotator *actions.Annotator) *Runner {
	return &Runner{fs: fs, sources: sources, base: base, annotator: annotator}
}

// Run executes the bump.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.Get(ctx)

	sources, err := r.sources.Sources(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("valid_bumps", opts.Mapping.Kinds()).Msg("valid bumps")
	log.Debug().Str("source", opts.Source.String()).Strs("sources", sources).Msg("checking version against source")

	triggered, err := bump.Resolve(sources, opts.Mapping)
	if err != nil {
		return nil, err
	}
	log.Info().Strs("bump_types", triggered).Msg("bump types identified")

	decision, err := bump.Select(triggered)
	if err != nil {
		return nil, err
	}
	if warning := decision.Warning(); warning != "" {
		log.Warn().Msg(warning)
		r.annotator.Warning(warning)
	}
	log.Debug().Str("release_type", decision.ReleaseType).Msg("release type")

	local, err := manifest.Read(r.fs, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	previousMaster, previousLocal, err := r.previousVersions(ctx, local, opts)
	if err != nil {
		return nil, err
	}

	newVersion, err := semver.Increment(previousMaster, decision.ReleaseType)
	if err != nil {
		return nil, fmt.Errorf("bumping %s: %w", previousMaster, err)
	}
	log.Info().Str("from", previousMaster).Str("to", newVersion).Msg("bumping version")

	result := &Result{
		PreviousVersionMaster: previousMaster,
		PreviousVersion:       previousLocal,
		NewVersion:            newVersion,
		ReleaseType:           decision.ReleaseType,
		Triggered:             decision.Triggered,
		Sources:               sources,
	}

	if opts.DryRun {
		log.Info().Str("path", opts.ManifestPath).Msg("dry run, manifest not written")
		return result, nil
	}

	local.SetVersion(newVersion)
	if err := manifest.Write(r.fs, opts.ManifestPath, local); err != nil {
		return nil, fmt.Errorf("error writing manifest: %w", err)
	}
	result.Written = true

	return result, nil
}

// previousVersions returns the default-branch and local versions. An explicit
// PreviousVersion stands in for both and skips the default-branch read.
func (r *Runner) previousVersions(ctx context.Context, local *manifest.Document, opts Options) (string, string, error) {
	if opts.PreviousVersion != "" {
		return opts.PreviousVersion, opts.PreviousVersion, nil
	}

	// A local manifest without a version still gets one written.
	localVersion, _ := local.Version()

	if r.base == nil {
		return "", "", errors.New("no default branch reader configured")
	}
	masterVersion, err := r.base.BaseVersion(ctx, opts.BaseManifestPath)
	if err != nil {
		return "", "", err
	}

	logging.Get(ctx).Debug().
		Str("master", masterVersion).
		Str("local", localVersion).
		Msg("manifest versions")

	return masterVersion, localVersion, nil
}
