package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/vaultboard/internal/config"
	"github.com/example/vaultboard/internal/db"
	"github.com/example/vaultboard/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the vaultboard environment",
		Long: `Environment health check for vaultboard.

Validates:
- Directory structure (~/.vaultboard/)
- Database file and config
- Publish repository
- git binary availability

Examples:
  vaultboard doctor           # Run full health check
  vaultboard doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkDirectories(),
				checkDatabase(),
				checkConfig(),
				checkPublishRepo(),
				checkGitBinary(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'vaultboard init' to set up.")
				} else {
					fmt.Printf("All checks passed. (%s)\n", version.String())
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkDirectories validates required directory structure
func checkDirectories() CheckResult {
	dir, err := config.DefaultDir()
	if err != nil {
		return CheckResult{Name: "Directories", Status: "✗", Details: "  Cannot get home directory"}
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Directories",
			Status:  "✗",
			Details: "  Missing: ~/.vaultboard/\n  Run: vaultboard init",
		}
	}

	return CheckResult{Name: "Directories", Status: "✓"}
}

// checkDatabase validates the database file exists
func checkDatabase() CheckResult {
	dbPath, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  Cannot resolve database path"}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: "  Missing: " + dbPath + "\n  Run: vaultboard init",
		}
	}

	return CheckResult{Name: "Database", Status: "✓"}
}

// checkConfig validates config.json parses
func checkConfig() CheckResult {
	dir, err := config.DefaultDir()
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  Cannot get home directory"}
	}

	if _, err := config.LoadConfig(dir); err != nil {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  " + err.Error() + "\n  Run: vaultboard init",
		}
	}

	return CheckResult{Name: "Config", Status: "✓"}
}

// checkPublishRepo validates the publish repository is a git repository
func checkPublishRepo() CheckResult {
	repoPath, _, _ := resolveRepoSettings("", "", "")
	if repoPath == "" {
		return CheckResult{Name: "Publish Repo", Status: "✗", Details: "  Cannot resolve repository path"}
	}

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Publish Repo",
			Status:  "⚠",
			Details: "  " + repoPath + " is not a git repository\n  Run: vaultboard init",
		}
	}

	return CheckResult{Name: "Publish Repo", Status: "✓"}
}

// checkGitBinary validates git is on PATH
func checkGitBinary() CheckResult {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return CheckResult{
			Name:    "Git Binary",
			Status:  "✗",
			Details: "  'git' not found in PATH\n  Publishing requires git",
		}
	}

	return CheckResult{Name: "Git Binary", Status: "✓", Details: "  " + gitPath}
}
