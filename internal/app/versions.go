package app

import (
	"context"

	"github.com/p5gen/p5gen/internal/registry"
)

// Versions fetches the live p5 version catalog.
func Versions(ctx context.Context, includePrerelease bool) (*registry.Catalog, error) {
	catalog, err := newRegistry().ListVersions(ctx, includePrerelease)
	if err != nil {
		return nil, NewVersionResolveError("failed to list p5 versions", err)
	}
	return catalog, nil
}
