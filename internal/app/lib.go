package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/p5gen/p5gen/internal/htmlpage"
	"github.com/p5gen/p5gen/internal/template/model"
)

var libClient = &http.Client{Timeout: 60 * time.Second}

// downloadLib fetches a local copy of p5.js into libDir for local delivery.
// Both the minified and full builds are recognized by later scans, so only the
// selected one is downloaded.
func downloadLib(ctx context.Context, version string, minified bool, libDir string) error {
	srcURL := htmlpage.ScriptURL(version, model.DeliveryCDN, htmlpage.ProviderJSDelivr, minified)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", srcURL, err)
	}
	resp, err := libClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", srcURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, srcURL)
	}

	if err := os.MkdirAll(libDir, 0755); err != nil {
		return fmt.Errorf("failed to create lib directory: %w", err)
	}

	target := filepath.Join(libDir, path.Base(srcURL))
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
