package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"

	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/template/model"
)

// GitProvider is the primary fetch path: a shallow, single-branch clone into a
// temporary directory, then a plain copy of the referenced subtree into the
// target. No clone cache is kept; every fetch is fresh.
type GitProvider struct {
	log zerolog.Logger
}

// NewGitProvider creates a new clone-based provider.
func NewGitProvider() *GitProvider {
	return &GitProvider{log: logging.GetLogger("provider.git")}
}

// Name returns the provider name.
func (p *GitProvider) Name() string {
	return "git"
}

// Fetch clones owner/repo at ref and copies the subtree named by the subpath
// (or the whole working tree) into targetDir, overwriting existing files.
func (p *GitProvider) Fetch(ctx context.Context, ref model.TemplateRef, targetDir string) error {
	repoURL := fmt.Sprintf("https://github.com/%s/%s.git", ref.Owner, ref.Repo)

	cloneDir, err := os.MkdirTemp("", "p5gen-clone-*")
	if err != nil {
		return NewFetchError(p.Name(), repoURL, fmt.Errorf("failed to create temp directory: %w", err))
	}
	defer os.RemoveAll(cloneDir)

	p.log.Debug().Str("url", repoURL).Str("ref", ref.Ref).Msg("shallow cloning")

	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
	}
	if ref.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref.Ref)
	}

	if _, err := git.PlainCloneContext(ctx, cloneDir, false, opts); err != nil {
		// Branch miss: the ref may name a tag instead.
		opts.ReferenceName = plumbing.NewTagReferenceName(ref.Ref)
		if _, tagErr := git.PlainCloneContext(ctx, cloneDir, false, opts); tagErr != nil {
			return NewFetchError(p.Name(), repoURL, err)
		}
	}

	src := cloneDir
	if ref.Subpath != "" {
		src = filepath.Join(cloneDir, filepath.FromSlash(ref.Subpath))
		info, err := os.Stat(src)
		if err != nil {
			return NewNotFoundError(p.Name(), ref.String())
		}
		if !info.IsDir() {
			// Single-file reference: copy just that file.
			if err := os.MkdirAll(targetDir, 0755); err != nil {
				return NewFetchError(p.Name(), ref.String(), err)
			}
			return copyFile(src, filepath.Join(targetDir, filepath.Base(src)))
		}
	}

	if err := copyTree(src, targetDir); err != nil {
		return NewFetchError(p.Name(), ref.String(), err)
	}
	return nil
}

// copyTree recursively copies src into dst, skipping the .git directory and
// force-overwriting existing files.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dst, 0755)
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(dst, rel), 0755)
		}
		return copyFile(path, filepath.Join(dst, rel))
	})
}

// copyFile copies a single file, preserving its permission bits.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
