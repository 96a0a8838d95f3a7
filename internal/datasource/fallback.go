package datasource

import (
	"context"
	"strings"

	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"go.uber.org/zap"
)

// FallbackSource tries its sources in order and returns the first batch
// that loads. A failing source is logged and skipped.
type FallbackSource struct {
	sources []Source
	logger  *logger.Logger
}

// NewFallbackSource creates a source chaining the given sources.
func NewFallbackSource(logger *logger.Logger, sources ...Source) *FallbackSource {
	return &FallbackSource{
		sources: sources,
		logger:  logger,
	}
}

// Name implements Source.
func (f *FallbackSource) Name() string {
	names := make([]string, 0, len(f.sources))
	for _, source := range f.sources {
		names = append(names, source.Name())
	}

	return "fallback(" + strings.Join(names, ", ") + ")"
}

// Load implements Source.
func (f *FallbackSource) Load(ctx context.Context, query Query) (Batch, error) {
	if len(f.sources) == 0 {
		return Batch{}, errors.New(errors.ErrCodeDataSourceUnavailable, "no trade history sources configured")
	}

	causes := make([]error, 0, len(f.sources))

	for _, source := range f.sources {
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}

		batch, err := source.Load(ctx, query)
		if err == nil {
			return batch, nil
		}

		f.logger.Warn("Trade history source failed, trying next",
			zap.String("source", source.Name()),
			zap.Error(err),
		)

		causes = append(causes, err)
	}

	return Batch{}, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "all trade history sources failed", errors.Join(causes...))
}

// Close implements Source. Every source is closed even when one fails.
func (f *FallbackSource) Close() error {
	var errs []error

	for _, source := range f.sources {
		if err := source.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
