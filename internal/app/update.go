package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/p5gen/p5gen/internal/config"
	"github.com/p5gen/p5gen/internal/htmlpage"
	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/template/model"
)

// UpdateOptions holds options for rebinding an existing project.
type UpdateOptions struct {
	// Dir is the project directory.
	Dir string
	// VersionRequest is "latest", a partial version, or an exact version.
	VersionRequest string
	// IncludePrerelease opts pre-release versions into resolution.
	IncludePrerelease bool
	// SkipTypes skips refreshing type definitions.
	SkipTypes bool
}

// UpdateResult holds the outcome of a version update.
type UpdateResult struct {
	// PreviousVersion is the version the project was bound to before.
	PreviousVersion string
	// Version is the newly bound version.
	Version string
	// TypesVersion is the refreshed type-definitions version.
	TypesVersion string
	// IndexRewritten reports whether index.html was mutated.
	IndexRewritten bool
}

// Update re-resolves the p5 version for an existing project and rewires it:
// the script reference keeps the minified/provider choices detected in the
// document, type definitions are refreshed, local copies re-downloaded, and
// p5gen.json updated.
func Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	log := logging.GetLogger("app.update")

	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, NewValidationError("failed to resolve project path", err)
	}

	project, err := config.Load(absDir)
	if err != nil {
		return nil, NewValidationError("not a p5gen project", err)
	}

	version, err := newRegistry().Resolve(ctx, opts.VersionRequest, opts.IncludePrerelease)
	if err != nil {
		return nil, NewVersionResolveError("failed to resolve p5 version", err)
	}
	log.Info().Str("from", project.Version).Str("to", version).Msg("updating p5 version")

	// Formatting choices in the document win over stale config values.
	prefs := htmlpage.Preferences{
		Provider: htmlpage.CDNProvider(project.Provider),
		Minified: project.Minified,
	}
	if ref := detectScript(absDir); ref != nil {
		prefs.Minified = ref.Minified
		if ref.Provider != "" {
			prefs.Provider = ref.Provider
		}
	}

	if project.Delivery == model.DeliveryLocal {
		if err := fetchLib(ctx, version, prefs.Minified, filepath.Join(absDir, model.LibDir)); err != nil {
			return nil, NewBindError("failed to download local p5 copy", err)
		}
	}

	typesVersion := project.TypesVersion
	if !opts.SkipTypes {
		typesVersion, err = newTypes().Fetch(ctx, version, project.Mode, filepath.Join(absDir, model.TypesDir))
		if err != nil {
			return nil, NewBindError("failed to refresh type definitions", err)
		}
	}

	rewritten, err := rewriteIndex(absDir, version, project.Delivery, prefs)
	if err != nil {
		return nil, NewBindError("failed to rewrite index.html", err)
	}

	previous := project.Version
	project.Version = version
	project.TypesVersion = typesVersion
	project.Minified = prefs.Minified
	project.Provider = string(prefs.Provider)
	if err := config.Save(absDir, project); err != nil {
		return nil, NewBindError("failed to save project configuration", err)
	}

	return &UpdateResult{
		PreviousVersion: previous,
		Version:         version,
		TypesVersion:    typesVersion,
		IndexRewritten:  rewritten,
	}, nil
}

// detectScript scans the project's index.html for an existing p5 reference.
// Returns nil when the file is missing or carries none.
func detectScript(dir string) *htmlpage.ScriptRef {
	data, err := os.ReadFile(filepath.Join(dir, model.IndexFile))
	if err != nil {
		return nil
	}
	doc, err := htmlpage.Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return htmlpage.FindScript(doc)
}
