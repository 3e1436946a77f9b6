package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
	"github.com/yujunjiex/git-merge-checker/internal/config"
	"github.com/yujunjiex/git-merge-checker/internal/git"
	"github.com/yujunjiex/git-merge-checker/internal/output"
)

// configFileNames lists the files searched for configuration in order.
// Checks .github/ first, then the repo root directory.
var configFileNames = []string{
	".github/merge-checker.yml",
	"merge-checker.yml",
}

func checkRunE(_ *cobra.Command, _ []string) error {
	// 1. Open repository.
	repo, err := git.Open(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	// 2. Load configuration.
	cfg, err := loadConfig(repo.WorkingDirectory())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// 3. Run the check.
	store := git.NewRepositoryStore(repo)
	report, err := checker.New(store).Run(checkOptions(cfg))
	if err != nil {
		return err
	}

	// 4. Write output.
	return writeReport(os.Stdout, report, cfg)
}

// checkOptions combines config values with flag overrides.
func checkOptions(cfg *config.Config) checker.Options {
	opts := checker.Options{
		Target:   *cfg.Target,
		Patterns: cfg.Patterns,
	}
	if flagTarget != "" {
		opts.Target = flagTarget
	}
	if len(flagPatterns) > 0 {
		opts.Patterns = flagPatterns
	}
	return opts
}

// loadConfig loads configuration from a file or defaults.
func loadConfig(workDir string) (*config.Config, error) {
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

	return builder.Build()
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

// writeReport writes the report in the requested format.
func writeReport(w io.Writer, report *checker.Report, cfg *config.Config) error {
	if flagBranch != "" {
		return output.WriteBranch(w, report, flagBranch)
	}

	format := *cfg.Output
	if flagOutput != "" {
		format = flagOutput
	}

	switch format {
	case config.OutputJSON:
		return output.WriteJSON(w, report)
	case config.OutputTable:
		return output.WriteTable(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
