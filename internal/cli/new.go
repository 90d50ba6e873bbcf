package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p5gen/p5gen/internal/app"
	"github.com/p5gen/p5gen/internal/config"
	"github.com/p5gen/p5gen/internal/template/model"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a p5.js project",
	Long: `Create a new p5.js project bound to a resolved p5 version.

Project files come from a built-in starter or from a GitHub template spec.
The chosen p5 version is wired into index.html and matching TypeScript
definitions are downloaded alongside.

Examples:
  p5gen new my-sketch
  p5gen new my-sketch --version 1.9.0 --local
  p5gen new my-sketch --template acme/starters/p5-basic#main
  p5gen new my-sketch --template https://github.com/acme/tmpl/tree/main/examples/basic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

// New command flags
var (
	newTemplate string
	newVersion  string
	newPre      bool
	newMode     string
	newLocal    bool
	newProvider string
	newFull     bool
	newNoTypes  bool
	newNoGit    bool
	newForce    bool
	newYes      bool
)

func init() {
	// Flags for new
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "", "Built-in starter name or GitHub template spec")
	newCmd.Flags().StringVar(&newVersion, "version", "latest", "p5.js version: exact, partial (e.g. 1.9), or latest")
	newCmd.Flags().BoolVar(&newPre, "pre", false, "Allow pre-release versions")
	newCmd.Flags().StringVar(&newMode, "mode", "", "Sketch mode: global or instance")
	newCmd.Flags().BoolVar(&newLocal, "local", false, "Download p5.js into lib/ instead of referencing a CDN")
	newCmd.Flags().StringVar(&newProvider, "provider", "", "CDN provider: jsdelivr, cdnjs, or unpkg")
	newCmd.Flags().BoolVar(&newFull, "full", false, "Reference the full (non-minified) build")
	newCmd.Flags().BoolVar(&newNoTypes, "no-types", false, "Skip downloading type definitions")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Skip git repository initialization")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Generate into a non-empty directory")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Accept defaults instead of prompting")
}

func runNew(cmd *cobra.Command, args []string) error {
	prefs, err := config.LoadUserPrefs()
	if err != nil {
		printWarning(fmt.Sprintf("ignoring unreadable user preferences: %v", err))
		prefs = config.DefaultUserPrefs()
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	} else if newYes || globalQuiet {
		name = "my-sketch"
	} else {
		name, err = promptProjectName()
		if err != nil {
			return err
		}
	}

	mode := model.SketchMode(newMode)
	if mode == "" {
		if newYes || globalQuiet {
			mode = model.ModeGlobal
		} else {
			mode, err = promptSketchMode()
			if err != nil {
				return err
			}
		}
	}
	if mode != model.ModeGlobal && mode != model.ModeInstance {
		return fmt.Errorf("invalid mode %q: expected global or instance", newMode)
	}

	delivery := prefs.Delivery
	if newLocal {
		delivery = model.DeliveryLocal
	} else if !cmd.Flags().Changed("local") && !newYes && !globalQuiet {
		delivery, err = promptDelivery()
		if err != nil {
			return err
		}
	}

	provider := newProvider
	if provider == "" {
		provider = prefs.Provider
	}

	minified := prefs.Minified
	if newFull {
		minified = false
	}

	printProgress(fmt.Sprintf("Creating project %s...", name))

	result, err := app.New(cmd.Context(), app.NewOptions{
		Path:              name,
		Name:              name,
		Template:          newTemplate,
		VersionRequest:    newVersion,
		IncludePrerelease: newPre || prefs.IncludePrerelease,
		Mode:              mode,
		Delivery:          delivery,
		Provider:          provider,
		Minified:          minified,
		SkipTypes:         newNoTypes,
		NoGit:             newNoGit,
		Force:             newForce,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Project creation failed: %v", err))
		return err
	}

	printSuccess(fmt.Sprintf("Project created at %s", result.Path))
	printInfo("")
	printInfo("Summary:")
	printInfo(fmt.Sprintf("  p5.js version: %s", result.Version))
	if result.TypesVersion != "" {
		printInfo(fmt.Sprintf("  Type definitions: %s", result.TypesVersion))
	}
	printInfo(fmt.Sprintf("  Template: %s", result.Template))
	if !result.IndexRewritten {
		printWarning("No index.html with an insertion point was found; the script reference was not wired")
	}

	return nil
}
