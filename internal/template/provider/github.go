package provider

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/template/model"
)

// maxRedirects bounds the redirect-following loop. Exceeding it is a fatal
// fetch error, the only intrinsic protection against redirect cycles.
const maxRedirects = 5

// Default endpoints for raw file and tarball retrieval.
const (
	defaultRawBaseURL     = "https://raw.githubusercontent.com"
	defaultArchiveBaseURL = "https://codeload.github.com"
)

// knownFileExtensions is the allow-list used to classify a subpath as a single
// file. A trailing dot alone is not enough: "v1.0" and "my.folder" are
// directories.
var knownFileExtensions = map[string]bool{
	".js":   true,
	".mjs":  true,
	".ts":   true,
	".html": true,
	".css":  true,
	".json": true,
	".glsl": true,
	".vert": true,
	".frag": true,
	".md":   true,
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".ico":  true,
}

// IsSingleFile reports whether a subpath denotes a single file rather than a
// directory tree. The final segment must carry a recognized extension,
// compared case-insensitively. ".tar.gz" is recognized as a compound extension.
func IsSingleFile(subpath string) bool {
	if subpath == "" {
		return false
	}
	base := strings.ToLower(path.Base(subpath))
	if strings.HasSuffix(base, ".tar.gz") {
		return true
	}
	ext := path.Ext(base)
	if ext == "" || ext == "." {
		return false
	}
	return knownFileExtensions[ext]
}

// GitHubProvider fetches templates over raw HTTP, without git. It is the
// degraded path used when the clone provider is unavailable or fails: single
// files come from the raw content endpoint, directory trees from a tarball
// archive.
type GitHubProvider struct {
	// HTTPClient is the HTTP client for requests. Redirects are followed
	// manually, so the client itself must not chase them.
	HTTPClient *http.Client
	// RawBaseURL is the raw content endpoint (test override).
	RawBaseURL string
	// ArchiveBaseURL is the tarball endpoint (test override).
	ArchiveBaseURL string

	log zerolog.Logger
}

// NewGitHubProvider creates a new raw-HTTP GitHub provider.
func NewGitHubProvider() *GitHubProvider {
	return &GitHubProvider{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		RawBaseURL:     defaultRawBaseURL,
		ArchiveBaseURL: defaultArchiveBaseURL,
		log:            logging.GetLogger("provider.github"),
	}
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// Fetch downloads the referenced files into targetDir. A subpath classified as
// a single file is fetched directly; anything else (including the whole repo)
// goes through a tarball download and extraction.
func (p *GitHubProvider) Fetch(ctx context.Context, ref model.TemplateRef, targetDir string) error {
	if IsSingleFile(ref.Subpath) {
		return p.fetchFile(ctx, ref, targetDir)
	}
	return p.fetchArchive(ctx, ref, targetDir)
}

// fetchFile retrieves one file from the raw content endpoint and writes it
// verbatim to targetDir/<basename>.
func (p *GitHubProvider) fetchFile(ctx context.Context, ref model.TemplateRef, targetDir string) error {
	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s", p.RawBaseURL, ref.Owner, ref.Repo, ref.Ref, ref.Subpath)
	p.log.Debug().Str("url", rawURL).Msg("fetching single file")

	resp, err := p.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return NewFetchError(p.Name(), rawURL, fmt.Errorf("failed to create target directory: %w", err))
	}

	target := filepath.Join(targetDir, path.Base(ref.Subpath))
	out, err := os.Create(target)
	if err != nil {
		return NewFetchError(p.Name(), rawURL, fmt.Errorf("failed to create file: %w", err))
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return NewFetchError(p.Name(), rawURL, fmt.Errorf("failed to write file: %w", err))
	}
	return nil
}

// fetchArchive retrieves the repository tarball at ref and stream-extracts it
// into targetDir. When the reference carries a subpath, only entries under it
// are extracted, re-rooted so targetDir receives the subpath's contents
// directly.
func (p *GitHubProvider) fetchArchive(ctx context.Context, ref model.TemplateRef, targetDir string) error {
	archiveURL := fmt.Sprintf("%s/%s/%s/tar.gz/%s", p.ArchiveBaseURL, ref.Owner, ref.Repo, ref.Ref)
	p.log.Debug().Str("url", archiveURL).Str("subpath", ref.Subpath).Msg("fetching archive")

	resp, err := p.get(ctx, archiveURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return NewFetchError(p.Name(), archiveURL, fmt.Errorf("failed to create target directory: %w", err))
	}

	if err := extractTarGz(resp.Body, targetDir, ref.Subpath); err != nil {
		return NewFetchError(p.Name(), archiveURL, err)
	}
	return nil
}

// get issues a GET request, following up to maxRedirects redirect hops by
// hand. A redirect without a Location header, an exceeded hop budget, and any
// non-2xx terminal status are fatal. 404 maps to a distinct not-found error.
func (p *GitHubProvider) get(ctx context.Context, rawURL string) (*http.Response, error) {
	current := rawURL
	for hop := 0; hop <= maxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return nil, NewFetchError(p.Name(), current, err)
		}

		resp, err := p.HTTPClient.Do(req)
		if err != nil {
			return nil, NewFetchError(p.Name(), current, err)
		}

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" {
				return nil, NewProviderError(FetchFailed, p.Name(), current,
					"redirect response missing Location header", nil)
			}
			next, err := resp.Request.URL.Parse(loc)
			if err != nil {
				return nil, NewFetchError(p.Name(), current, fmt.Errorf("invalid redirect target: %w", err))
			}
			p.log.Debug().Int("hop", hop+1).Str("location", next.String()).Msg("following redirect")
			current = next.String()
			continue
		case http.StatusNotFound:
			resp.Body.Close()
			return nil, NewNotFoundError(p.Name(), current)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			status := resp.StatusCode
			resp.Body.Close()
			return nil, NewStatusError(p.Name(), current, status)
		}
		return resp, nil
	}
	return nil, NewRedirectError(p.Name(), rawURL, maxRedirects)
}

// extractTarGz extracts a gzipped tarball into targetDir, stripping the
// leading repo-ref wrapper directory the archive format adds. A non-empty
// subpath restricts extraction to entries under it, re-rooted at targetDir.
func extractTarGz(r io.Reader, targetDir, subpath string) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		// Archives wrap everything in a "repo-ref/" root directory.
		parts := strings.SplitN(header.Name, "/", 2)
		if len(parts) < 2 || parts[1] == "" {
			continue
		}
		rel := parts[1]

		if subpath != "" {
			if rel == subpath {
				continue
			}
			if !strings.HasPrefix(rel, subpath+"/") {
				continue
			}
			rel = strings.TrimPrefix(rel, subpath+"/")
		}

		// Reject entries that would escape the target directory.
		if strings.Contains(rel, "..") {
			continue
		}

		target := filepath.Join(targetDir, filepath.FromSlash(rel))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return fmt.Errorf("failed to write file %s: %w", target, err)
			}
			outFile.Close()
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		}
	}
	return nil
}
