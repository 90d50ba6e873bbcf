package provider

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/p5gen/p5gen/internal/logging"
	"github.com/p5gen/p5gen/internal/template/model"
)

// Fetcher orchestrates the primary clone path with the raw-HTTP fallback.
type Fetcher struct {
	primary  Provider
	fallback Provider
	log      zerolog.Logger
}

// NewFetcher creates a Fetcher with the default git-then-raw-HTTP strategy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		primary:  NewGitProvider(),
		fallback: NewGitHubProvider(),
		log:      logging.GetLogger("provider"),
	}
}

// NewFetcherWith creates a Fetcher over explicit providers. A nil primary
// exercises the fallback path directly.
func NewFetcherWith(primary, fallback Provider) *Fetcher {
	return &Fetcher{
		primary:  primary,
		fallback: fallback,
		log:      logging.GetLogger("provider"),
	}
}

// Resolve normalizes a spec string, raising InvalidSpec lazily for input the
// normalizer carried through unchanged.
func (f *Fetcher) Resolve(spec string) (model.TemplateRef, error) {
	ref, ok := Normalize(spec)
	if !ok {
		return model.TemplateRef{}, NewInvalidSpecError("spec", spec, nil)
	}
	return ref, nil
}

// Fetch tries the primary provider and falls back to raw HTTP retrieval when
// it fails. Fallback errors are the ones surfaced: by then the primary path
// has already been reported unavailable.
func (f *Fetcher) Fetch(ctx context.Context, ref model.TemplateRef, targetDir string) error {
	if f.primary != nil {
		err := f.primary.Fetch(ctx, ref, targetDir)
		if err == nil {
			return nil
		}
		f.log.Warn().Err(err).Str("spec", ref.String()).
			Msg("primary fetch failed, falling back to raw download")
	}
	return f.fallback.Fetch(ctx, ref, targetDir)
}
