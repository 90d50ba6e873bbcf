package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p5gen/p5gen/internal/app"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [dir]",
	Short: "Rebind a project to a different p5.js version",
	Long: `Re-resolve the p5.js version for an existing project and rewrite its
script reference, preserving the minified/full choice and CDN provider the
document already uses. Type definitions are refreshed to match.

Examples:
  p5gen update
  p5gen update ./my-sketch --version 2.1
  p5gen update --version latest --pre`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

// Update command flags
var (
	updateVersion string
	updatePre     bool
	updateNoTypes bool
)

func init() {
	// Flags for update
	updateCmd.Flags().StringVar(&updateVersion, "version", "latest", "p5.js version: exact, partial, or latest")
	updateCmd.Flags().BoolVar(&updatePre, "pre", false, "Allow pre-release versions")
	updateCmd.Flags().BoolVar(&updateNoTypes, "no-types", false, "Skip refreshing type definitions")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	printProgress("Resolving p5.js version...")

	result, err := app.Update(cmd.Context(), app.UpdateOptions{
		Dir:               dir,
		VersionRequest:    updateVersion,
		IncludePrerelease: updatePre,
		SkipTypes:         updateNoTypes,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Update failed: %v", err))
		return err
	}

	if result.PreviousVersion == result.Version {
		printInfo(fmt.Sprintf("Already on p5.js %s", result.Version))
	} else {
		printSuccess(fmt.Sprintf("Updated p5.js %s → %s", result.PreviousVersion, result.Version))
	}
	if result.TypesVersion != "" {
		printInfo(fmt.Sprintf("  Type definitions: %s", result.TypesVersion))
	}
	if !result.IndexRewritten {
		printWarning("index.html offered no script reference or insertion point; document left unchanged")
	}

	return nil
}
