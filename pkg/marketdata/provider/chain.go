package provider

import (
	"context"

	"github.com/rxtech-lab/pricefeed/internal/logger"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"go.uber.org/zap"
)

// SeriesChain tries its sources in order and returns the first non-empty series.
// Every failure is swallowed; when all sources are exhausted the result is an empty
// series named after the requested symbol. Only context cancellation and a chain
// without sources are reported.
type SeriesChain struct {
	sources []SeriesSource
	logger  *logger.Logger
}

// NewSeriesChain creates a chain over the given sources. Nil sources are ignored.
func NewSeriesChain(log *logger.Logger, sources ...SeriesSource) *SeriesChain {
	kept := make([]SeriesSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			kept = append(kept, s)
		}
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &SeriesChain{
		sources: kept,
		logger:  log,
	}
}

// Name implements SeriesSource.
func (c *SeriesChain) Name() string {
	return "chain"
}

// SourceNames lists the sources in the order they are tried.
func (c *SeriesChain) SourceNames() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}

	return names
}

// FetchSeries implements SeriesSource.
func (c *SeriesChain) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.Series, error) {
	if len(c.sources) == 0 {
		return types.EmptySeries(symbol), errors.New(errors.ErrCodeDataSourceUnavailable, "no series source configured")
	}

	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return types.EmptySeries(symbol), err
		}

		s, err := src.FetchSeries(ctx, symbol, period, interval)
		if err != nil {
			c.logger.Debug("series source failed",
				zap.String("symbol", symbol),
				zap.String("source", src.Name()),
				zap.Int("code", int(errors.GetCode(err))),
				zap.Error(err),
			)

			continue
		}

		source := s.Source
		if source == "" {
			source = src.Name()
		}

		s = types.NewSeries(symbol, source, s.Points)

		if s.Empty() {
			c.logger.Debug("series source returned no data",
				zap.String("symbol", symbol),
				zap.String("source", src.Name()),
			)

			continue
		}

		return s, nil
	}

	c.logger.Warn("no source produced data",
		zap.String("symbol", symbol),
		zap.Strings("sources", c.SourceNames()),
	)

	return types.EmptySeries(symbol), ctx.Err()
}

// SectorChain tries its sources in order and returns the first non-empty sector label.
type SectorChain struct {
	sources []SectorSource
	logger  *logger.Logger
}

// NewSectorChain creates a chain over the given sources. Nil sources are ignored.
func NewSectorChain(log *logger.Logger, sources ...SectorSource) *SectorChain {
	kept := make([]SectorSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			kept = append(kept, s)
		}
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &SectorChain{
		sources: kept,
		logger:  log,
	}
}

// Name implements SectorSource.
func (c *SectorChain) Name() string {
	return "chain"
}

// FetchSector implements SectorSource. It returns ErrCodeNoDataFound when no source
// produced a label and ErrCodeDataSourceUnavailable when the chain has no sources.
func (c *SectorChain) FetchSector(ctx context.Context, symbol string) (string, error) {
	if len(c.sources) == 0 {
		return "", errors.New(errors.ErrCodeDataSourceUnavailable, "no sector source configured")
	}

	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		sector, err := src.FetchSector(ctx, symbol)
		if err != nil {
			c.logger.Debug("sector source failed",
				zap.String("symbol", symbol),
				zap.String("source", src.Name()),
				zap.Error(err),
			)

			continue
		}

		if sector != "" {
			return sector, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeNoDataFound, "no sector found for %s", symbol)
}
