package commands

import (
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/spf13/cobra"

	"github.com/R3MiX9002/my-gemini-app/internal/github"
)

var (
	syncDir    string
	syncOwner  string
	syncRepo   string
	syncBranch string
)

func NewGitHubSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github-sync",
		Short: "Push a directory to a GitHub branch and merge it into main",
		Long: `Upload every file under --dir to --branch through the GitHub contents
API, then merge --branch into main. The token is read from GITHUB_TOKEN.

Examples:
  GITHUB_TOKEN=... my-gemini-app github-sync --dir ./web --owner me --repo site --branch deploy`,
		Args: cobra.NoArgs,
		RunE: runGitHubSync,
	}
	cmd.Flags().StringVar(&syncDir, "dir", "", "Directory to upload")
	cmd.Flags().StringVar(&syncOwner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&syncRepo, "repo", "", "Repository name")
	cmd.Flags().StringVar(&syncBranch, "branch", "", "Branch to push to before merging")
	for _, name := range []string{"dir", "owner", "repo", "branch"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runGitHubSync(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.GitHub.Token == "" {
		return errors.New("GITHUB_TOKEN is not set")
	}

	ctx := ctxzap.ToContext(cmd.Context(), log)
	client := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token)
	result, err := client.AutoPushMerge(ctx, syncDir, syncOwner, syncRepo, syncBranch)
	if result != nil {
		for _, path := range result.Uploaded {
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", path)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "merged %s into %s\n", syncBranch, github.DefaultBaseBranch)
	return nil
}
