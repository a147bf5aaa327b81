package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/wire"
)

// StatusCmd returns the status command showing board and publish state.
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show board counts and publish state",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, _ := cmd.Flags().GetString("repo")
			repoPath, _, _ = resolveRepoSettings(repoPath, "", "")

			cards, err := wire.CardService().ListCards(cmd.Context(), primary.CardFilters{})
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}

			byCategory := map[string]int{}
			bySensitivity := map[string]int{}
			for _, c := range cards {
				byCategory[c.Category]++
				bySensitivity[c.Sensitivity]++
			}

			fmt.Printf("Board: %d cards\n", len(cards))
			for _, cat := range primary.Categories {
				if byCategory[cat] > 0 {
					fmt.Printf("  %-14s %d\n", cat, byCategory[cat])
				}
			}

			fmt.Println()
			fmt.Println("Sensitivity:")
			for _, level := range []string{"private", "personal", "business", "ideas"} {
				if bySensitivity[level] > 0 {
					fmt.Printf("  %-14s %d\n", sensitivityLabel(level), bySensitivity[level])
				}
			}

			fmt.Println()
			status, err := wire.PublishService().Status(cmd.Context(), repoPath)
			if err != nil {
				fmt.Printf("Publish: repository not initialized (%s)\n", repoPath)
				fmt.Println("  Run: vaultboard init")
				return nil
			}

			fmt.Printf("Publish: %s\n", status.RepoPath)
			fmt.Printf("  Publishable: %d\n", status.PublishableCount)
			if status.LastPublishedAt != "" {
				fmt.Printf("  Last publish: %s (%d cards, commit %s)\n", status.LastPublishedAt, status.PublishedCount, shortSHA(status.LastCommitSHA))
			} else {
				fmt.Println("  Never published")
			}
			return nil
		},
	}

	cmd.Flags().StringP("repo", "r", "", "Publish repository path (defaults to config)")
	return cmd
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
