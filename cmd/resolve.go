package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/actions"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/bump"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/output"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/release"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve text...",
	Short: "Resolve the release type for literal titles or labels",
	Long: `Resolve runs the configured patterns against the given strings without
touching git, GitHub or the manifest. Each argument is one source string,
e.g. a pull request title or one label.

Examples:
  prsemver resolve "feat: add export"
  prsemver resolve --major-pattern '/^breaking$/' breaking enhancement`,
	Args: cobra.MinimumNArgs(1),
	RunE: resolveRunE,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags(), resolveWorkDir(actions.LoadEnvironment()))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	mapping := cfg.BumpMapping()
	triggered, err := bump.Resolve(args, mapping)
	if err != nil {
		return err
	}

	decision, err := bump.Select(triggered)
	if err != nil {
		return err
	}
	if warning := decision.Warning(); warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", warning)
	}

	res := release.Result{
		ReleaseType: decision.ReleaseType,
		Triggered:   decision.Triggered,
		Sources:     args,
	}
	if flagExplain {
		if err := output.WriteExplanation(cmd.ErrOrStderr(), mapping, res); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	return writeOutput(cmd.OutOrStdout(), map[string]string{
		"release_type": decision.ReleaseType,
		"bump_types":   strings.Join(decision.Triggered, ","),
	})
}
