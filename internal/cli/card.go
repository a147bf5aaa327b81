package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/wire"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards on the board",
	Long:  "Create, list, edit, and move cards. Sensitivity is classified from content and never set by hand.",
}

var cardCreateCmd = &cobra.Command{
	Use:   "create [content]",
	Short: "Create a new card",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")

		resp, err := wire.CardService().CreateCard(cmd.Context(), primary.CreateCardRequest{Content: content})
		if err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}

		fmt.Printf("✓ Created card %s\n", resp.CardID)
		fmt.Printf("  Category: %s\n", resp.Card.Category)
		fmt.Printf("  Sensitivity: %s\n", sensitivityLabel(resp.Card.Sensitivity))
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards in creation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetStringSlice("category")

		cards, err := wire.CardService().ListCards(cmd.Context(), primary.CardFilters{Categories: categories})
		if err != nil {
			return fmt.Errorf("failed to list cards: %w", err)
		}

		if len(cards) == 0 {
			fmt.Println("No cards found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tSENSITIVITY\tPUBLISHED\tCONTENT")
		fmt.Fprintln(w, "--\t--------\t-----------\t---------\t-------")
		for _, c := range cards {
			published := "-"
			if c.LastPublishedAt != "" {
				published = c.LastPublishedAt
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Category, sensitivityLabel(c.Sensitivity), published, truncate(c.Content, 60))
		}
		w.Flush()
		return nil
	},
}

var cardShowCmd = &cobra.Command{
	Use:   "show [card-id]",
	Short: "Show card details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := wire.CardService().GetCard(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("card not found: %w", err)
		}

		fmt.Printf("Card: %s\n", card.ID)
		fmt.Printf("Category: %s\n", card.Category)
		fmt.Printf("Sensitivity: %s\n", sensitivityLabel(card.Sensitivity))
		fmt.Printf("Created: %s\n", card.CreatedAt)
		fmt.Printf("Updated: %s\n", card.UpdatedAt)
		if card.LastPublishedAt != "" {
			fmt.Printf("Published: %s (commit %s)\n", card.LastPublishedAt, card.LastCommitSHA)
		}
		fmt.Printf("\n%s\n", card.Content)
		return nil
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit [card-id] [content]",
	Short: "Replace card content (reclassifies sensitivity)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args[1:], " ")

		card, err := wire.CardService().UpdateContent(cmd.Context(), primary.UpdateContentRequest{
			CardID:  args[0],
			Content: content,
		})
		if err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		fmt.Printf("✓ Card %s updated\n", card.ID)
		fmt.Printf("  Sensitivity: %s\n", sensitivityLabel(card.Sensitivity))
		return nil
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move [card-id] [category]",
	Short: "Move a card to a workflow category",
	Long:  "Move a card to one of: " + strings.Join(primary.Categories, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := wire.CardService().MoveCategory(cmd.Context(), primary.MoveCategoryRequest{
			CardID:   args[0],
			Category: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}

		fmt.Printf("✓ Card %s moved to %s\n", card.ID, card.Category)
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete [card-id]",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.CardService().DeleteCard(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}

		fmt.Printf("✓ Card %s deleted\n", args[0])
		return nil
	},
}

var cardPublishableCmd = &cobra.Command{
	Use:   "publishable",
	Short: "List cards eligible for publishing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := wire.CardService().GetPublishable(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list publishable cards: %w", err)
		}

		if len(cards) == 0 {
			fmt.Println("No publishable cards")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSENSITIVITY\tCONTENT")
		fmt.Fprintln(w, "--\t-----------\t-------")
		for _, c := range cards {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, sensitivityLabel(c.Sensitivity), truncate(c.Content, 60))
		}
		w.Flush()
		return nil
	},
}

// sensitivityLabel colors a sensitivity level for terminal output.
func sensitivityLabel(level string) string {
	switch level {
	case "private":
		return color.New(color.FgRed).Sprint(level)
	case "personal":
		return color.New(color.FgYellow).Sprint(level)
	case "business":
		return color.New(color.FgHiGreen).Sprint(level)
	case "ideas":
		return color.New(color.FgHiBlue).Sprint(level)
	default:
		return level
	}
}

// truncate shortens s to at most max runes, cutting on rune boundaries so
// multi-byte content never becomes invalid UTF-8.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	cardListCmd.Flags().StringSliceP("category", "c", nil, "Filter by category (repeatable)")

	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardShowCmd)
	cardCmd.AddCommand(cardEditCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	cardCmd.AddCommand(cardPublishableCmd)
}

// CardCmd returns the card command
func CardCmd() *cobra.Command {
	return cardCmd
}
