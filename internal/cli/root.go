package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p5gen/p5gen/internal/logging"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalVerbose int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "p5gen",
	Short: "p5.js project generator and version manager",
	Long: `p5gen creates p5.js sketch projects and manages the p5 version they bind to.

Use "p5gen new <name>" to:
  1. Scaffold project files from a built-in starter or a GitHub template
  2. Resolve the requested p5.js version against the npm registry
  3. Wire the version into index.html and download matching type definitions

Templates are fetched from GitHub repositories; specs accept owner/repo
shorthand, full URLs, and owner/repo/path#ref forms.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(globalVerbose, globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().CountVarP(&globalVerbose, "verbose", "v", "Increase logging verbosity (-v info, -vv debug)")

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
