package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/p5gen/p5gen/internal/htmlpage"
	"github.com/p5gen/p5gen/internal/registry"
	"github.com/p5gen/p5gen/internal/template/model"
	"github.com/p5gen/p5gen/internal/template/provider"
	"github.com/p5gen/p5gen/internal/typedefs"
)

// Dependency seams, overridden in tests.
var (
	newFetcher  = func() templateFetcher { return provider.NewFetcher() }
	newRegistry = func() versionResolver { return registry.NewClient() }
	newTypes    = func() typesFetcher { return typedefs.NewDownloader() }
	fetchLib    = downloadLib
	gitInit     = initGitRepo
)

// templateFetcher is the slice of provider.Fetcher the workflows use.
type templateFetcher interface {
	Resolve(spec string) (model.TemplateRef, error)
	Fetch(ctx context.Context, ref model.TemplateRef, targetDir string) error
}

// versionResolver is the slice of registry.Client the workflows use.
type versionResolver interface {
	Resolve(ctx context.Context, request string, includePrerelease bool) (string, error)
	ListVersions(ctx context.Context, includePrerelease bool) (*registry.Catalog, error)
}

// typesFetcher is the slice of typedefs.Downloader the workflows use.
type typesFetcher interface {
	Fetch(ctx context.Context, version string, mode model.SketchMode, targetDir string) (string, error)
}

// rewriteIndex updates the p5 script reference in dir's index.html. Returns
// false without error when the file does not exist or offers no mutation
// point; templates are not required to carry an HTML entry point.
func rewriteIndex(dir, version string, delivery model.DeliveryMode, prefs htmlpage.Preferences) (bool, error) {
	indexPath := filepath.Join(dir, model.IndexFile)
	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	doc, err := htmlpage.Parse(bytes.NewReader(data))
	if err != nil {
		return false, err
	}

	if !htmlpage.UpdateScript(doc, version, delivery, prefs) {
		return false, nil
	}

	var buf bytes.Buffer
	if err := htmlpage.Render(&buf, doc); err != nil {
		return false, err
	}
	if err := os.WriteFile(indexPath, buf.Bytes(), 0644); err != nil {
		return false, err
	}
	return true, nil
}
