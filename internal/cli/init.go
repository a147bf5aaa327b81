package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/config"
	"github.com/example/vaultboard/internal/db"
	"github.com/example/vaultboard/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the vaultboard database and publish repository",
		Long:  `Initialize the database at ~/.vaultboard/vaultboard.db, write the default config, and create the publish repository.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, _ := cmd.Flags().GetString("repo")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing vaultboard database at %s\n", dbPath)
			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized")

			if repoPath == "" {
				repoPath, err = config.DefaultRepoPath()
				if err != nil {
					return fmt.Errorf("failed to resolve repository path: %w", err)
				}
			}

			if err := initConfig(repoPath); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			fmt.Println("✓ Config written to ~/.vaultboard/config.json")

			result, err := wire.PublishService().Initialize(cmd.Context(), repoPath)
			if err != nil {
				return fmt.Errorf("failed to initialize publish repository: %w", err)
			}
			if result.Created {
				fmt.Printf("✓ Publish repository created at %s\n", result.Path)
			} else {
				fmt.Printf("✓ Publish repository already exists at %s\n", result.Path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  vaultboard card create \"my first note\"")
			fmt.Println("  vaultboard status")

			return nil
		},
	}

	cmd.Flags().StringP("repo", "r", "", "Publish repository path (defaults to ~/.vaultboard/published)")
	return cmd
}

// initConfig writes the default config file if one does not exist.
func initConfig(repoPath string) error {
	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}

	if _, err := config.LoadConfig(dir); err == nil {
		return nil // Already exists, skip
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return config.SaveConfig(dir, &config.Config{
		Version:  "1",
		RepoPath: repoPath,
		Remote:   config.DefaultRemote,
		Branch:   config.DefaultBranch,
	})
}
