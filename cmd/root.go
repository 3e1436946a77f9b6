package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath      string
	flagTarget    string
	flagPatterns  []string
	flagBranch    string
	flagConfig    string
	flagOutput    string
	flagVerbosity string
)

// rootCmd is the top-level command for merge-checker.
var rootCmd = &cobra.Command{
	Use:   "merge-checker",
	Short: "Merge status of remote branches against a target branch",
	Long: `merge-checker reports, for every remote tracking branch, whether the
branch's latest commit has been merged into a target branch, and if so via
which merge commit and when. It is built for repositories that use
three-way (non-fast-forward) merges, where this is not visible from a
flat commit list.`,
	// Default action is the local check.
	RunE: checkRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVarP(&flagTarget, "target", "t", "", "target branch (default: current HEAD branch)")
	rootCmd.PersistentFlags().StringArrayVar(&flagPatterns, "pattern", nil, "glob pattern for branch names, repeatable (default: all branches)")
	rootCmd.PersistentFlags().StringVarP(&flagBranch, "branch", "b", "", "show the result for a single branch only")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: table or json")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
