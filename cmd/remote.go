package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
	"github.com/yujunjiex/git-merge-checker/internal/config"
	"github.com/yujunjiex/git-merge-checker/internal/git"
	ghprovider "github.com/yujunjiex/git-merge-checker/internal/github"
)

var (
	flagToken      string
	flagAppID      int64
	flagAppKeyPath string
	flagGitHubURL  string
	flagMaxCommits int
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Check merge status of a GitHub repository via API",
	Long: `Check the merge status of every branch of a GitHub repository by
reading history from the GitHub API. No local clone is required.

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars

Examples:
  GITHUB_TOKEN=ghp_xxx merge-checker remote myorg/myrepo
  merge-checker remote myorg/myrepo --token ghp_xxx --target main
  merge-checker remote myorg/myrepo --github-app-id 12345 --github-app-key-path /path/to/key.pem`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	remoteCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	remoteCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	remoteCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	remoteCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	remoteCmd.Flags().IntVar(&flagMaxCommits, "max-commits", 1000, "maximum commit depth to walk via API")

	rootCmd.AddCommand(remoteCmd)
}

func remoteRunE(_ *cobra.Command, args []string) error {
	// 1. Parse owner/repo.
	owner, repo, err := parseOwnerRepo(args[0])
	if err != nil {
		return err
	}

	// 2. Resolve base URL from flag or env var so both client and
	// repository use it.
	baseURL := ghprovider.ResolveBaseURL(flagGitHubURL)

	// 3. Create GitHub client.
	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    baseURL,
		Owner:      owner,
	})
	if err != nil {
		return err
	}

	// 4. Build the API-backed repository.
	ghRepo := ghprovider.NewGitHubRepository(client, owner, repo,
		ghprovider.WithBaseURL(baseURL),
		ghprovider.WithMaxCommits(flagMaxCommits),
	)

	// 5. Load configuration (local file only; the check needs no config
	// from the remote repo).
	cfg := config.NewBuilder()
	if flagConfig != "" {
		userCfg, err := config.LoadFromFile(flagConfig)
		if err != nil {
			return err
		}
		cfg.Add(userCfg)
	}
	built, err := cfg.Build()
	if err != nil {
		return err
	}

	// 6. Run the check.
	store := git.NewRepositoryStore(ghRepo)
	report, err := checker.New(store).Run(checkOptions(built))
	if err != nil {
		return err
	}

	// 7. Write output.
	return writeReport(os.Stdout, report, built)
}

func parseOwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return parts[0], parts[1], nil
}
