package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/actions"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
	flagShowConfig   bool
	flagExplain      bool
	flagVerbosity    string
)

// rootCmd is the top-level command for prsemver.
var rootCmd = &cobra.Command{
	Use:   "prsemver",
	Short: "Semantic version bumps from pull request titles and labels",
	Long: `prsemver decides a major, minor or patch bump from the title or labels of a
pull request, increments the manifest version found on the default branch and
writes the new version into the local manifest.

Inside GitHub Actions the action inputs (INPUT_*) are honored, the pull request
number is read from the event payload and previous_version_master,
previous_version and new_version are written to GITHUB_OUTPUT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default action is bump.
	RunE: bumpRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", "", "path to the repository (default: GITHUB_WORKSPACE or .)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for name=value lines")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. new_version)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "show which patterns matched which sources")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	addBumpFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, actions.LoadEnvironment().Actions))
}

func execute(args []string, stdout, stderr io.Writer, inActions bool) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		actions.NewAnnotator(stdout, inActions).Error(err.Error())
		return 1
	}
	return 0
}
