package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/config"
	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/wire"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish eligible cards to the git repository",
	Long: `Serialize every publishable card into the publish repository and commit.

Only cards classified business or ideas are ever written. Private and
personal cards never leave the local store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repoPath, _ := cmd.Flags().GetString("repo")
		message, _ := cmd.Flags().GetString("message")
		push, _ := cmd.Flags().GetBool("push")
		remote, _ := cmd.Flags().GetString("remote")
		branch, _ := cmd.Flags().GetString("branch")

		repoPath, remote, branch = resolveRepoSettings(repoPath, remote, branch)

		result, err := wire.PublishService().Publish(cmd.Context(), primary.PublishRequest{
			Path:    repoPath,
			Message: message,
			Push:    push,
			Remote:  remote,
			Branch:  branch,
		})
		if err != nil && result == nil {
			return err
		}

		if result.CardsPublished == 0 {
			fmt.Println("Nothing to publish")
			return nil
		}

		fmt.Printf("✓ Published %d cards to %s\n", result.CardsPublished, repoPath)
		if result.NewCommit {
			fmt.Printf("  Commit: %s\n", result.CommitSHA)
		} else {
			fmt.Printf("  No changes since commit %s\n", result.CommitSHA)
		}
		if result.Pushed {
			fmt.Printf("  Pushed to %s/%s\n", remote, branch)
		}

		// A failed push is reported but does not undo the local commit.
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ %v\n", err)
		}
		return nil
	},
}

var publishHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past publish runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoPath, _ := cmd.Flags().GetString("repo")
		limit, _ := cmd.Flags().GetInt("limit")
		repoPath, _, _ = resolveRepoSettings(repoPath, "", "")

		entries, err := wire.PublishService().History(cmd.Context(), repoPath, limit)
		if err != nil {
			return fmt.Errorf("failed to load publish history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No publish history")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCOMMIT\tCARDS\tPUSHED\tMESSAGE")
		fmt.Fprintln(w, "----\t------\t-----\t------\t-------")
		for _, e := range entries {
			sha := e.CommitSHA
			if len(sha) > 8 {
				sha = sha[:8]
			}
			pushed := "no"
			if e.Pushed {
				pushed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", e.CreatedAt, sha, e.CardsPublished, pushed, e.Message)
		}
		w.Flush()
		return nil
	},
}

// resolveRepoSettings fills empty repo settings from the config file, then
// from built-in defaults.
func resolveRepoSettings(repoPath, remote, branch string) (string, string, string) {
	if dir, err := config.DefaultDir(); err == nil {
		if cfg, err := config.LoadConfig(dir); err == nil {
			if repoPath == "" {
				repoPath = cfg.RepoPath
			}
			if remote == "" {
				remote = cfg.Remote
			}
			if branch == "" {
				branch = cfg.Branch
			}
		}
	}
	if repoPath == "" {
		if p, err := config.DefaultRepoPath(); err == nil {
			repoPath = p
		}
	}
	if remote == "" {
		remote = config.DefaultRemote
	}
	if branch == "" {
		branch = config.DefaultBranch
	}
	return repoPath, remote, branch
}

func init() {
	publishCmd.Flags().StringP("repo", "r", "", "Publish repository path (defaults to config)")
	publishCmd.Flags().StringP("message", "m", "", "Commit message")
	publishCmd.Flags().Bool("push", false, "Push to the remote after committing")
	publishCmd.Flags().String("remote", "", "Remote name (defaults to config)")
	publishCmd.Flags().String("branch", "", "Branch name (defaults to config)")

	publishHistoryCmd.Flags().StringP("repo", "r", "", "Publish repository path (defaults to config)")
	publishHistoryCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")

	publishCmd.AddCommand(publishHistoryCmd)
}

// PublishCmd returns the publish command
func PublishCmd() *cobra.Command {
	return publishCmd
}
