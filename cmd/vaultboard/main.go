package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/cli"
	"github.com/example/vaultboard/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "vaultboard",
		Short:   "vaultboard - privacy-aware note board with selective git publishing",
		Version: version.String(),
		Long: `vaultboard keeps quick notes as cards on a local board, classifies each
card's sensitivity from its content, and publishes only business and ideas
cards to a git repository. Private and personal cards never leave the
local store.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.CardCmd())
	rootCmd.AddCommand(cli.ScanCmd())
	rootCmd.AddCommand(cli.PublishCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
