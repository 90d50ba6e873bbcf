package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p5gen/p5gen/internal/app"
)

// versionsCmd represents the versions command
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available p5.js versions",
	Long: `List the p5.js versions published to the npm registry, newest first.

Examples:
  p5gen versions
  p5gen versions --pre
  p5gen versions --json`,
	RunE: runVersions,
}

// Versions command flags
var (
	versionsPre  bool
	versionsJSON bool
	versionsAll  bool
)

// versionsDisplayCap limits plain output; the catalog itself is never truncated.
const versionsDisplayCap = 15

func init() {
	// Flags for versions
	versionsCmd.Flags().BoolVar(&versionsPre, "pre", false, "Include pre-release versions")
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false, "Output as JSON")
	versionsCmd.Flags().BoolVar(&versionsAll, "all", false, "Show every version instead of the newest few")
}

func runVersions(cmd *cobra.Command, args []string) error {
	catalog, err := app.Versions(cmd.Context(), versionsPre)
	if err != nil {
		printErrorMsg(fmt.Sprintf("Failed to list versions: %v", err))
		return err
	}

	if versionsJSON {
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printInfo(fmt.Sprintf("Latest: %s", catalog.Latest))
	printInfo("")

	shown := catalog.Versions
	if !versionsAll && len(shown) > versionsDisplayCap {
		shown = shown[:versionsDisplayCap]
	}
	for _, v := range shown {
		printInfo(fmt.Sprintf("  %s", v))
	}
	if remaining := len(catalog.Versions) - len(shown); remaining > 0 {
		printDim(fmt.Sprintf("  ... and %d more (use --all)", remaining))
	}

	return nil
}
