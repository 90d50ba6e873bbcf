package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/p5gen/p5gen/internal/config"
	"github.com/p5gen/p5gen/internal/htmlpage"
	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/template/model"
	"github.com/p5gen/p5gen/internal/template/provider"
)

// NewOptions holds options for generating a project.
type NewOptions struct {
	// Path is the destination directory.
	Path string
	// Name is the project name. Defaults to the destination's base name.
	Name string
	// Template is a built-in starter name or a remote template spec.
	// Empty selects the default starter.
	Template string
	// VersionRequest is "latest", a partial version, or an exact version.
	VersionRequest string
	// IncludePrerelease opts pre-release versions into resolution.
	IncludePrerelease bool
	// Mode is the sketch mode the project is typed against.
	Mode model.SketchMode
	// Delivery selects CDN or local script delivery.
	Delivery model.DeliveryMode
	// Provider is the CDN provider for cdn delivery.
	Provider string
	// Minified selects the .min build.
	Minified bool
	// SkipTypes skips downloading type definitions.
	SkipTypes bool
	// NoGit skips git repository initialization.
	NoGit bool
	// Force generates into a non-empty directory.
	Force bool
}

// NewResult holds the outcome of project generation.
type NewResult struct {
	// Path is the generated project directory.
	Path string
	// Version is the p5 version the project was bound to.
	Version string
	// TypesVersion is the type-definitions version actually used.
	TypesVersion string
	// Template is the starter or spec the files came from.
	Template string
	// IndexRewritten reports whether index.html received a script reference.
	IndexRewritten bool
}

// New generates a p5 project: scaffolds the files, resolves the requested
// version against the live catalog, wires the version into index.html,
// downloads type definitions, and persists the choices in p5gen.json.
func New(ctx context.Context, opts NewOptions) (*NewResult, error) {
	log := logging.GetLogger("app.new")

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, NewValidationError("failed to resolve target path", err)
	}

	if info, err := os.Stat(absPath); err == nil {
		if !info.IsDir() {
			return nil, NewValidationError(fmt.Sprintf("target exists and is not a directory: %s", absPath), nil)
		}
		entries, err := os.ReadDir(absPath)
		if err != nil {
			return nil, NewValidationError("failed to inspect target directory", err)
		}
		if len(entries) > 0 && !opts.Force {
			return nil, NewValidationError(fmt.Sprintf("target directory is not empty: %s (use --force to proceed)", absPath), nil)
		}
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(absPath)
	}

	// Scaffold the project files.
	templateName := opts.Template
	if templateName == "" {
		templateName = "default"
	}
	if provider.IsRemoteSpec(templateName) {
		fetcher := newFetcher()
		ref, err := fetcher.Resolve(templateName)
		if err != nil {
			return nil, NewTemplateFetchError("failed to resolve template spec", err)
		}
		templateName = ref.String()
		log.Info().Str("spec", templateName).Msg("fetching remote template")
		if err := fetcher.Fetch(ctx, ref, absPath); err != nil {
			return nil, NewTemplateFetchError("failed to fetch template", err)
		}
	} else {
		if err := copyScaffold(templateName, absPath); err != nil {
			return nil, NewScaffoldError("failed to write starter files", err)
		}
	}

	// Resolve the abstract version request.
	version, err := newRegistry().Resolve(ctx, opts.VersionRequest, opts.IncludePrerelease)
	if err != nil {
		return nil, NewVersionResolveError("failed to resolve p5 version", err)
	}
	log.Info().Str("version", version).Msg("resolved p5 version")

	if opts.Delivery == model.DeliveryLocal {
		if err := fetchLib(ctx, version, opts.Minified, filepath.Join(absPath, model.LibDir)); err != nil {
			return nil, NewBindError("failed to download local p5 copy", err)
		}
	}

	typesVersion := ""
	if !opts.SkipTypes {
		typesVersion, err = newTypes().Fetch(ctx, version, opts.Mode, filepath.Join(absPath, model.TypesDir))
		if err != nil {
			return nil, NewBindError("failed to download type definitions", err)
		}
		log.Info().Str("typesVersion", typesVersion).Msg("downloaded type definitions")
	}

	rewritten, err := rewriteIndex(absPath, version, opts.Delivery, htmlpage.Preferences{
		Provider: htmlpage.CDNProvider(opts.Provider),
		Minified: opts.Minified,
	})
	if err != nil {
		return nil, NewBindError("failed to rewrite index.html", err)
	}

	project := config.DefaultProject(name)
	project.Version = version
	project.TypesVersion = typesVersion
	project.Mode = opts.Mode
	project.Delivery = opts.Delivery
	project.Provider = opts.Provider
	project.Minified = opts.Minified
	project.Template = templateName
	if err := config.Save(absPath, project); err != nil {
		return nil, NewBindError("failed to save project configuration", err)
	}

	if !opts.NoGit {
		if err := gitInit(absPath); err != nil {
			// Project generation succeeded; a missing git setup is not fatal.
			log.Warn().Err(err).Msg("git initialization failed")
		}
	}

	return &NewResult{
		Path:           absPath,
		Version:        version,
		TypesVersion:   typesVersion,
		Template:       templateName,
		IndexRewritten: rewritten,
	}, nil
}
