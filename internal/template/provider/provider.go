package provider

import (
	"context"

	"github.com/p5gen/p5gen/internal/template/model"
)

// Provider abstracts a way of materializing a remote template on disk.
type Provider interface {
	// Fetch populates targetDir with the files the reference denotes.
	// targetDir is created if missing. Partial writes from a failed fetch
	// are not rolled back; callers must treat any error as a whole-operation
	// failure.
	Fetch(ctx context.Context, ref model.TemplateRef, targetDir string) error

	// Name returns the provider name (e.g., "git", "github").
	Name() string
}
