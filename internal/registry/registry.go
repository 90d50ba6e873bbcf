// Package registry resolves abstract version requests against the npm
// registry's live version catalog.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/p5gen/p5gen/internal/logging"
)

// DefaultBaseURL is the jsDelivr data API serving npm package metadata.
const DefaultBaseURL = "https://data.jsdelivr.com/v1"

// DefaultPackage is the npm package this tool manages.
const DefaultPackage = "p5"

// stableVersionPattern matches exactly integer.integer.integer: no suffix, no
// extra segments, no leading v. Anything else is a pre-release.
var stableVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Catalog is one live snapshot of the remote version list, newest-first.
// Constructed fresh per call and never cached.
type Catalog struct {
	// Latest is the version the registry's "latest" tag points at.
	Latest string `json:"latest"`
	// Versions is the ordered version list, newest-first.
	Versions []string `json:"versions"`
}

// Client queries package metadata from the registry.
type Client struct {
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client
	// BaseURL is the metadata API root (test override).
	BaseURL string
	// Package is the npm package name.
	Package string

	log zerolog.Logger
}

// NewClient creates a registry client for the default package.
func NewClient() *Client {
	return NewClientFor(DefaultPackage)
}

// NewClientFor creates a registry client for an arbitrary npm package.
func NewClientFor(pkg string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
		Package:    pkg,
		log:        logging.GetLogger("registry"),
	}
}

// IsStable reports whether a version string is a stable release. Stable means
// exactly X.Y.Z; any suffix regardless of label spelling is a pre-release.
func IsStable(version string) bool {
	return stableVersionPattern.MatchString(version)
}

// FilterStable returns the stable subset of versions, order preserved.
func FilterStable(versions []string) []string {
	var stable []string
	for _, v := range versions {
		if IsStable(v) {
			stable = append(stable, v)
		}
	}
	return stable
}

// ListVersions fetches the live version catalog. When includePrerelease is
// false the versions list is exactly the stable subset, in source order.
func (c *Client) ListVersions(ctx context.Context, includePrerelease bool) (*Catalog, error) {
	metaURL := fmt.Sprintf("%s/package/npm/%s", c.BaseURL, c.Package)
	c.log.Debug().Str("url", metaURL).Msg("fetching version catalog")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL, nil)
	if err != nil {
		return nil, NewRegistryError(c.Package, "failed to build metadata request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewRegistryError(c.Package, "metadata fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusError(c.Package, resp.StatusCode)
	}

	var meta struct {
		Tags struct {
			Latest string `json:"latest"`
		} `json:"tags"`
		Versions []string `json:"versions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, NewRegistryError(c.Package, "invalid metadata response", err)
	}

	versions := meta.Versions
	if !includePrerelease {
		versions = FilterStable(versions)
	}

	return &Catalog{Latest: meta.Tags.Latest, Versions: versions}, nil
}

// Resolve resolves an abstract version request against the live catalog.
// Empty or "latest" yields the latest stable version; an exact version present
// in the catalog yields itself; a partial request ("2", "1.9") yields the
// newest catalog entry whose leading segments match it.
func (c *Client) Resolve(ctx context.Context, request string, includePrerelease bool) (string, error) {
	if request == "" || request == "latest" {
		return c.LatestStable(ctx)
	}

	catalog, err := c.ListVersions(ctx, includePrerelease)
	if err != nil {
		return "", err
	}
	for _, v := range catalog.Versions {
		if v == request || strings.HasPrefix(v, request+".") {
			return v, nil
		}
	}
	return "", NewRegistryError(c.Package, fmt.Sprintf("no published version matches '%s'", request), nil)
}

// LatestStable returns the newest stable version: the latest tag when it is
// stable, otherwise the first stable entry of the catalog.
func (c *Client) LatestStable(ctx context.Context) (string, error) {
	catalog, err := c.ListVersions(ctx, false)
	if err != nil {
		return "", err
	}
	if IsStable(catalog.Latest) {
		return catalog.Latest, nil
	}
	if len(catalog.Versions) == 0 {
		return "", NewRegistryError(c.Package, "no stable versions published", nil)
	}
	return catalog.Versions[0], nil
}
