package provider

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p5gen/p5gen/internal/template/model"
)

func TestIsSingleFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"file.js", true},
		{"FILE.JS", true},
		{"dir/sketch.mjs", true},
		{"index.html", true},
		{"shader.frag", true},
		{"archive.tar.gz", true},
		{"v1.0", false},
		{"my.folder", false},
		{"", false},
		{"examples/basic", false},
		{"trailing.", false},
		{"file.unknownext", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSingleFile(tt.path), "path %q", tt.path)
	}
}

// testProvider returns a GitHubProvider pointed at a test server.
func testProvider(serverURL string) *GitHubProvider {
	p := NewGitHubProvider()
	p.RawBaseURL = serverURL
	p.ArchiveBaseURL = serverURL
	return p
}

func TestGitHubProvider_FetchSingleFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/acme/tmpl/main/src/sketch.js" {
			fmt.Fprint(w, "function setup() {}\n")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	targetDir := filepath.Join(t.TempDir(), "out")
	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "src/sketch.js"}

	require.NoError(t, p.Fetch(context.Background(), ref, targetDir))

	data, err := os.ReadFile(filepath.Join(targetDir, "sketch.js"))
	require.NoError(t, err)
	assert.Equal(t, "function setup() {}\n", string(data))
}

func TestGitHubProvider_RedirectsFollowed(t *testing.T) {
	// 301 -> 301 -> 200: two hops succeed within the budget.
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/acme/tmpl/main/a.js":
			http.Redirect(w, r, srv.URL+"/hop2", http.StatusMovedPermanently)
		case "/hop2":
			http.Redirect(w, r, srv.URL+"/final", http.StatusMovedPermanently)
		case "/final":
			fmt.Fprint(w, "content")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	targetDir := t.TempDir()
	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "a.js"}

	require.NoError(t, p.Fetch(context.Background(), ref, targetDir))

	data, err := os.ReadFile(filepath.Join(targetDir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestGitHubProvider_RedirectLoopExceedsBudget(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "a.js"}

	err := p.Fetch(context.Background(), ref, t.TempDir())
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, RedirectExceeded, perr.Type)
}

func TestGitHubProvider_RedirectMissingLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "a.js"}

	err := p.Fetch(context.Background(), ref, t.TempDir())
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FetchFailed, perr.Type)
	assert.Contains(t, perr.Message, "Location")
}

func TestGitHubProvider_NotFoundDistinct(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "missing.js"}

	err := p.Fetch(context.Background(), ref, t.TempDir())
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NotFound, perr.Type)
}

func TestGitHubProvider_StatusCarried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "a.js"}

	err := p.Fetch(context.Background(), ref, t.TempDir())
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FetchFailed, perr.Type)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
}

// buildArchive creates an in-memory tar.gz with the wrapper directory GitHub
// archives carry.
func buildArchive(t *testing.T, root string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     root + "/",
		Typeflag: tar.TypeDir,
		Mode:     0755,
	}))
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     root + "/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}

func TestGitHubProvider_FetchArchiveWholeRepo(t *testing.T) {
	archive := buildArchive(t, "tmpl-main", map[string]string{
		"index.html":    "<html></html>",
		"src/sketch.js": "draw",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/acme/tmpl/tar.gz/main", r.URL.Path)
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	targetDir := filepath.Join(t.TempDir(), "out")
	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main"}

	require.NoError(t, p.Fetch(context.Background(), ref, targetDir))

	data, err := os.ReadFile(filepath.Join(targetDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	data, err = os.ReadFile(filepath.Join(targetDir, "src", "sketch.js"))
	require.NoError(t, err)
	assert.Equal(t, "draw", string(data))
}

func TestGitHubProvider_FetchArchiveSubpathRerooted(t *testing.T) {
	archive := buildArchive(t, "tmpl-main", map[string]string{
		"examples/basic/index.html": "basic",
		"examples/basic/sketch.js":  "code",
		"examples/other/index.html": "other",
		"README.md":                 "readme",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	targetDir := filepath.Join(t.TempDir(), "out")
	p := testProvider(srv.URL)
	ref := model.TemplateRef{Owner: "acme", Repo: "tmpl", Ref: "main", Subpath: "examples/basic"}

	require.NoError(t, p.Fetch(context.Background(), ref, targetDir))

	// Subpath contents land directly in targetDir, not nested.
	data, err := os.ReadFile(filepath.Join(targetDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "basic", string(data))

	data, err = os.ReadFile(filepath.Join(targetDir, "sketch.js"))
	require.NoError(t, err)
	assert.Equal(t, "code", string(data))

	// Entries outside the subpath are not extracted.
	_, err = os.Stat(filepath.Join(targetDir, "README.md"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(targetDir, "examples"))
	assert.True(t, os.IsNotExist(err))
}
