package typedefs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/registry"
	"github.com/p5gen/p5gen/internal/template/model"
)

// LegacyTypesPackage is the independently-versioned definitions package used
// before p5 bundled its own.
const LegacyTypesPackage = "@types/p5"

// DefaultCDNBaseURL is the npm CDN the definition files are served from.
const DefaultCDNBaseURL = "https://cdn.jsdelivr.net/npm"

// versionLister is the slice of the registry client the downloader needs.
type versionLister interface {
	ListVersions(ctx context.Context, includePrerelease bool) (*registry.Catalog, error)
}

// Downloader fetches the type-definition files matching a resolved p5 version.
type Downloader struct {
	// HTTPClient is the HTTP client for CDN requests.
	HTTPClient *http.Client
	// CDNBaseURL is the npm CDN root (test override).
	CDNBaseURL string
	// Registry lists available @types/p5 versions for the legacy strategy.
	Registry versionLister

	log zerolog.Logger
}

// NewDownloader creates a Downloader wired to the public registry and CDN.
func NewDownloader() *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		CDNBaseURL: DefaultCDNBaseURL,
		Registry:   registry.NewClientFor(LegacyTypesPackage),
		log:        logging.GetLogger("typedefs"),
	}
}

// Fetch downloads the definitions for pkgVersion into targetDir and returns
// the types version actually used, which differs from pkgVersion when the
// legacy strategy applies. Instance mode downloads only the primary file;
// global mode additionally downloads the global-augmentation file. Exactly one
// or two requests are issued, never more.
func (d *Downloader) Fetch(ctx context.Context, pkgVersion string, mode model.SketchMode, targetDir string) (string, error) {
	v, err := ParseVersion(pkgVersion)
	if err != nil {
		return "", err
	}

	strategy := StrategyFor(v)
	d.log.Debug().Str("version", pkgVersion).Str("strategy", strategy.Kind.String()).
		Str("reason", strategy.Reason).Msg("selecting type definitions")

	var typesVersion string
	var urls []string

	switch strategy.Kind {
	case StrategyLegacy:
		catalog, err := d.Registry.ListVersions(ctx, false)
		if err != nil {
			return "", err
		}
		typesVersion, err = ResolveLegacyVersion(v, catalog.Versions)
		if err != nil {
			return "", err
		}
		urls = append(urls, fmt.Sprintf("%s/%s@%s/index.d.ts", d.CDNBaseURL, LegacyTypesPackage, typesVersion))
		if mode == model.ModeGlobal {
			urls = append(urls, fmt.Sprintf("%s/%s@%s/global.d.ts", d.CDNBaseURL, LegacyTypesPackage, typesVersion))
		}
	case StrategyBundled:
		// Bundled definitions are tied 1:1 to the chosen package version.
		typesVersion = pkgVersion
		urls = append(urls, fmt.Sprintf("%s/p5@%s/types/p5.d.ts", d.CDNBaseURL, pkgVersion))
		if mode == model.ModeGlobal {
			urls = append(urls, fmt.Sprintf("%s/p5@%s/types/global.d.ts", d.CDNBaseURL, pkgVersion))
		}
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create types directory: %w", err)
	}

	for _, u := range urls {
		if err := d.download(ctx, u, targetDir); err != nil {
			return "", err
		}
	}
	return typesVersion, nil
}

// download retrieves one definition file and writes it under targetDir with
// its basename.
func (d *Downloader) download(ctx context.Context, rawURL, targetDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	target := filepath.Join(targetDir, filepath.Base(rawURL))
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	d.log.Debug().Str("file", target).Msg("wrote type definitions")
	return nil
}
