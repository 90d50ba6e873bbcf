package typedefs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p5gen/p5gen/internal/registry"
	"github.com/p5gen/p5gen/internal/template/model"
)

// stubLister serves a fixed legacy version list.
type stubLister struct {
	versions []string
}

func (s *stubLister) ListVersions(ctx context.Context, includePrerelease bool) (*registry.Catalog, error) {
	return &registry.Catalog{Latest: s.versions[0], Versions: s.versions}, nil
}

// testDownloader serves definition files from an httptest CDN and counts
// requests.
func testDownloader(t *testing.T, legacy []string) (*Downloader, *int) {
	t.Helper()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprintf(w, "// definitions for %s\n", r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	d := NewDownloader()
	d.CDNBaseURL = srv.URL
	d.Registry = &stubLister{versions: legacy}
	return d, &requests
}

func TestDownloader_LegacyInstanceMode(t *testing.T) {
	d, requests := testDownloader(t, []string{"1.7.7", "1.7.1", "1.6.3"})
	dir := t.TempDir()

	typesVersion, err := d.Fetch(context.Background(), "1.9.0", model.ModeInstance, dir)
	require.NoError(t, err)
	assert.Equal(t, "1.7.7", typesVersion)

	// Exactly one fetch, the primary definitions file only.
	assert.Equal(t, 1, *requests)
	assert.FileExists(t, filepath.Join(dir, "index.d.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "global.d.ts"))
}

func TestDownloader_LegacyGlobalMode(t *testing.T) {
	d, requests := testDownloader(t, []string{"1.7.7"})
	dir := t.TempDir()

	typesVersion, err := d.Fetch(context.Background(), "1.9.0", model.ModeGlobal, dir)
	require.NoError(t, err)
	assert.Equal(t, "1.7.7", typesVersion)

	// Exactly two fetches: primary plus global augmentation.
	assert.Equal(t, 2, *requests)
	assert.FileExists(t, filepath.Join(dir, "index.d.ts"))
	assert.FileExists(t, filepath.Join(dir, "global.d.ts"))
}

func TestDownloader_BundledUsesExactVersion(t *testing.T) {
	d, requests := testDownloader(t, nil)
	dir := t.TempDir()

	typesVersion, err := d.Fetch(context.Background(), "2.1.1", model.ModeGlobal, dir)
	require.NoError(t, err)
	assert.Equal(t, "2.1.1", typesVersion)

	assert.Equal(t, 2, *requests)
	assert.FileExists(t, filepath.Join(dir, "p5.d.ts"))
	assert.FileExists(t, filepath.Join(dir, "global.d.ts"))
}

func TestDownloader_BundledInstanceMode(t *testing.T) {
	d, requests := testDownloader(t, nil)
	dir := t.TempDir()

	typesVersion, err := d.Fetch(context.Background(), "2.0.2", model.ModeInstance, dir)
	require.NoError(t, err)
	assert.Equal(t, "2.0.2", typesVersion)
	assert.Equal(t, 1, *requests)

	data, err := os.ReadFile(filepath.Join(dir, "p5.d.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "p5@2.0.2/types/p5.d.ts")
}

func TestDownloader_InvalidVersion(t *testing.T) {
	d, _ := testDownloader(t, nil)

	_, err := d.Fetch(context.Background(), "not-a-version", model.ModeGlobal, t.TempDir())
	require.Error(t, err)

	var verr *InvalidVersionError
	assert.ErrorAs(t, err, &verr)
}
