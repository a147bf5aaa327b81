package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/wire"
)

// ScanCmd returns the scan command for classifying arbitrary text.
func ScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [text]",
		Short: "Classify text without storing it",
		Long: `Run the sensitivity classifier over text and show every match.

The overall level is the most restrictive level with at least one match.
Text with no matches classifies as ideas.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			result, err := wire.CardService().ScanContent(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fmt.Printf("Level: %s\n", sensitivityLabel(result.Level))

			if len(result.Matches) == 0 {
				fmt.Println("No pattern matches")
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLEVEL\tMATCH\tPOSITION")
			fmt.Fprintln(w, "----\t-----\t-----\t--------")
			for _, m := range result.Matches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\n", m.Type, sensitivityLabel(m.Level), truncate(m.Text, 40), m.Start, m.End)
			}
			w.Flush()
			return nil
		},
	}
}
