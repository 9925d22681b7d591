package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/actions"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/config"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/git"
	ghprovider "github.com/MyCarrier-DevOps/go-prsemver/internal/github"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/logging"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/output"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/release"
)

// configFileNames lists the files searched for configuration in order.
// Checks .github/ first, then the repository root.
var configFileNames = []string{
	".github/prsemver.yml",
	".github/prsemver.yaml",
	"prsemver.yml",
	"prsemver.yaml",
}

var (
	flagSource          string
	flagMajorPattern    string
	flagMinorPattern    string
	flagPatchPattern    string
	flagManifest        string
	flagDefaultBranch   string
	flagPreviousVersion string
	flagPullRequest     int
	flagFetch           bool
	flagBaseFrom        string
	flagDryRun          bool
	flagTitle           string
	flagLabels          []string

	flagRepo       string
	flagToken      string
	flagAppID      int64
	flagAppKey     string
	flagAppKeyPath string
	flagGitHubURL  string
)

func addBumpFlags(c *cobra.Command) {
	pf := c.PersistentFlags()
	pf.StringVar(&flagSource, "source", "", "text to match: title or label (default title)")
	pf.StringVar(&flagMajorPattern, "major-pattern", "", "pattern triggering a major bump (default "+config.DefaultMajorPattern+")")
	pf.StringVar(&flagMinorPattern, "minor-pattern", "", "pattern triggering a minor bump (default "+config.DefaultMinorPattern+")")
	pf.StringVar(&flagPatchPattern, "patch-pattern", "", "pattern triggering a patch bump (default "+config.DefaultPatchPattern+")")

	f := c.Flags()
	f.StringVar(&flagManifest, "manifest", "", "manifest path relative to --path (default package.json)")
	f.StringVar(&flagDefaultBranch, "default-branch", "", "revision holding the released manifest (default remotes/origin/master)")
	f.StringVar(&flagPreviousVersion, "previous-version", "", "version to bump instead of the manifest versions")
	f.IntVar(&flagPullRequest, "pull-request", 0, "pull request number (default: from the event payload)")
	f.BoolVar(&flagFetch, "fetch", true, "fetch all remotes before reading the default branch")
	f.StringVar(&flagBaseFrom, "base-from", "", "read the default-branch manifest from git or api (default git)")
	f.BoolVar(&flagDryRun, "dry-run", false, "compute the new version without writing the manifest")
	f.StringVar(&flagTitle, "title", "", "use this pull request title instead of fetching the pull request")
	f.StringSliceVar(&flagLabels, "label", nil, "use these pull request labels instead of fetching the pull request")

	f.StringVar(&flagRepo, "repo", "", "GitHub repository owner/name (default GITHUB_REPOSITORY)")
	f.StringVar(&flagToken, "token", "", "GitHub token (or github_token input, or GITHUB_TOKEN env var)")
	f.Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	f.StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	f.StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	f.StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
}

func bumpRunE(cmd *cobra.Command, _ []string) error {
	env := actions.LoadEnvironment()

	ctx, err := newLogContext(cmd, env)
	if err != nil {
		return err
	}

	workDir := resolveWorkDir(env)
	cfg, err := loadConfig(cmd.Flags(), workDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if flagShowConfig {
		return output.WriteJSON(cmd.OutOrStdout(), cfg)
	}

	if err := validateOutput(output.GetVariables(release.Result{})); err != nil {
		return err
	}

	s := &session{
		env:   env,
		fs:    afero.NewOsFs(),
		flags: cmd.Flags(),
		token: resolveToken(),
	}

	manifestPath, err := absManifestPath(workDir, *cfg.ManifestPath)
	if err != nil {
		return err
	}

	sources, err := s.sourceProvider(cfg)
	if err != nil {
		return err
	}

	base, baseManifestPath, err := s.baseReader(ctx, cfg, workDir, manifestPath)
	if err != nil {
		return err
	}

	runner := release.NewRunner(s.fs, sources, base, actions.NewAnnotator(cmd.OutOrStdout(), env.Actions))
	res, err := runner.Run(ctx, release.Options{
		Source:           *cfg.Source,
		Mapping:          cfg.BumpMapping(),
		ManifestPath:     manifestPath,
		BaseManifestPath: baseManifestPath,
		PreviousVersion:  *cfg.PreviousVersion,
		DryRun:           flagDryRun,
	})
	if err != nil {
		return err
	}

	if flagExplain {
		if err := output.WriteExplanation(cmd.ErrOrStderr(), cfg.BumpMapping(), *res); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	vars := output.GetVariables(*res)

	if env.Actions && env.OutputPath != "" {
		if err := actions.NewOutputWriter(s.fs, env.OutputPath).Write(vars); err != nil {
			return err
		}
	}

	return writeOutput(cmd.OutOrStdout(), vars)
}

// session holds what one invocation resolves lazily, the GitHub repository
// in particular, which is only needed for pull request lookups and api reads.
type session struct {
	env   actions.Environment
	fs    afero.Fs
	flags *pflag.FlagSet
	token string
	repo  *ghprovider.Repository
}

func (s *session) github() (*ghprovider.Repository, error) {
	if s.repo != nil {
		return s.repo, nil
	}

	slug := flagRepo
	if slug == "" {
		slug = s.env.Repository
	}
	if slug == "" {
		return nil, errors.New("no repository: use --repo or set GITHUB_REPOSITORY")
	}
	owner, name, err := actions.OwnerRepo(slug)
	if err != nil {
		return nil, err
	}

	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      s.token,
		AppID:      flagAppID,
		AppKey:     flagAppKey,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    flagGitHubURL,
		Owner:      owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	s.repo = ghprovider.NewRepository(client, owner, name)
	return s.repo, nil
}

func (s *session) sourceProvider(cfg *config.Config) (release.SourceProvider, error) {
	if s.flags.Changed("title") || s.flags.Changed("label") {
		return release.StaticSources{Title: flagTitle, Labels: flagLabels}, nil
	}

	number := *cfg.PullRequest
	if number == 0 {
		ev, err := actions.ReadEvent(s.fs, s.env.EventPath)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve pr: %w", err)
		}
		number = ev.Number
	}

	repo, err := s.github()
	if err != nil {
		return nil, err
	}
	return release.PullRequestSources{Fetcher: repo, Number: number}, nil
}

// baseReader returns the default-branch version reader and the manifest path
// it expects. An explicit previous version needs no reader.
func (s *session) baseReader(ctx context.Context, cfg *config.Config, workDir, manifestPath string) (release.BaseVersionReader, string, error) {
	if *cfg.PreviousVersion != "" {
		return nil, "", nil
	}

	if *cfg.BaseFrom == config.BaseFromAPI {
		repo, err := s.github()
		if err != nil {
			return nil, "", err
		}
		root, err := filepath.Abs(workDir)
		if err != nil {
			return nil, "", fmt.Errorf("resolving manifest path: %w", err)
		}
		rel, err := filepath.Rel(root, manifestPath)
		if err != nil {
			return nil, "", fmt.Errorf("resolving manifest path: %w", err)
		}
		ref := release.BranchFromRevision(*cfg.DefaultBranch)
		return release.APIBaseVersion{Repo: repo, Ref: ref}, filepath.ToSlash(rel), nil
	}

	repo, err := git.Open(workDir)
	if err != nil {
		return nil, "", err
	}

	if *cfg.Fetch {
		logging.Get(ctx).Debug().Msg("fetching all remotes")
		if err := repo.Fetch(ctx, git.TokenAuth(s.gitToken())); err != nil {
			return nil, "", err
		}
	}

	rel, err := repo.RelativePath(manifestPath)
	if err != nil {
		return nil, "", err
	}
	return release.GitBaseVersion{Repo: repo, Revision: *cfg.DefaultBranch}, rel, nil
}

// gitToken is the token used for fetching over HTTPS.
func (s *session) gitToken() string {
	if s.token != "" {
		return s.token
	}
	return os.Getenv("GITHUB_TOKEN")
}

func resolveToken() string {
	if flagToken != "" {
		return flagToken
	}
	return actions.Input("github_token")
}

func resolveWorkDir(env actions.Environment) string {
	switch {
	case flagPath != "":
		return flagPath
	case env.Workspace != "":
		return env.Workspace
	}
	return "."
}

func absManifestPath(workDir, manifestPath string) (string, error) {
	p := manifestPath
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving manifest path: %w", err)
	}
	return abs, nil
}

func newLogContext(cmd *cobra.Command, env actions.Environment) (context.Context, error) {
	level, err := logging.ParseVerbosity(flagVerbosity)
	if err != nil {
		return nil, err
	}
	if env.Debug && !cmd.Flags().Changed("verbosity") {
		level = logging.DebugLevel
	}
	return logging.New(cmd.Context(), logging.Config{
		Writer: logging.ConsoleWriter(cmd.ErrOrStderr()),
		Level:  level,
	}), nil
}

// loadConfig layers defaults, the config file, action inputs and explicitly
// set flags, in that order.
func loadConfig(flags *pflag.FlagSet, workDir string) (*config.Config, error) {
	builder := config.NewBuilder()

	configPath := flagConfig
	if configPath == "" {
		configPath = findConfigFile(workDir)
	}

	if configPath != "" {
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	}

	inputs, err := config.FromInputs(actions.Input)
	if err != nil {
		return nil, err
	}
	builder.Add(inputs)

	overrides, err := flagOverrides(flags)
	if err != nil {
		return nil, err
	}
	builder.Add(overrides)

	return builder.Build()
}

// flagOverrides builds a config layer from the flags set on the command line.
func flagOverrides(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := &config.Config{}

	if flags.Changed("source") {
		src, err := config.ParseSource(flagSource)
		if err != nil {
			return nil, err
		}
		cfg.Source = &src
	}

	strFlags := []struct {
		name string
		val  string
		dst  **string
	}{
		{"major-pattern", flagMajorPattern, &cfg.MajorPattern},
		{"minor-pattern", flagMinorPattern, &cfg.MinorPattern},
		{"patch-pattern", flagPatchPattern, &cfg.PatchPattern},
		{"manifest", flagManifest, &cfg.ManifestPath},
		{"default-branch", flagDefaultBranch, &cfg.DefaultBranch},
		{"previous-version", flagPreviousVersion, &cfg.PreviousVersion},
		{"base-from", flagBaseFrom, &cfg.BaseFrom},
	}
	for _, f := range strFlags {
		if flags.Changed(f.name) {
			v := f.val
			*f.dst = &v
		}
	}

	if flags.Changed("pull-request") {
		n := flagPullRequest
		cfg.PullRequest = &n
	}
	if flags.Changed("fetch") {
		b := flagFetch
		cfg.Fetch = &b
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the working directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// writeOutput writes the variables in the requested format.
func writeOutput(w io.Writer, vars map[string]string) error {
	if err := validateOutput(vars); err != nil {
		return err
	}
	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}
	if flagOutput == "json" {
		return output.WriteJSON(w, vars)
	}
	return output.WriteAll(w, vars)
}

// validateOutput checks --output and --show-variable against the variables
// a command produces. Only the keys of vars are consulted.
func validateOutput(vars map[string]string) error {
	switch flagOutput {
	case "", "json":
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
	if flagShowVariable != "" {
		if _, ok := vars[flagShowVariable]; !ok {
			return fmt.Errorf("unknown variable %q", flagShowVariable)
		}
	}
	return nil
}
