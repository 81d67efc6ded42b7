package marketdata

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/pricefeed/internal/logger"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"github.com/rxtech-lab/pricefeed/pkg/marketdata/provider"
	"go.uber.org/zap"
)

// UnknownSector is reported for tickers whose sector could not be resolved.
const UnknownSector = "Unknown"

// OnDownloadProgress is called once per ticker during a sequential download.
type OnDownloadProgress func(current float64, total float64, message string)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option customizes a Client.
type Option func(*Client)

// WithSeriesSource replaces the single-symbol strategy chain.
func WithSeriesSource(source provider.SeriesSource) Option {
	return func(c *Client) {
		c.series = source
	}
}

// WithBatchSource replaces the multi-symbol strategy. A nil source disables batch downloads.
func WithBatchSource(source provider.BatchSource) Option {
	return func(c *Client) {
		c.batch = source
	}
}

// WithSectorSource replaces the sector strategy chain.
func WithSectorSource(source provider.SectorSource) Option {
	return func(c *Client) {
		c.sectors = source
	}
}

// WithProgress registers a progress callback for sequential downloads.
func WithProgress(onProgress OnDownloadProgress) Option {
	return func(c *Client) {
		c.onProgress = onProgress
	}
}

// WithSleeper replaces the polite delay implementation.
func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// Client fetches daily price series for equity portfolios. Every retrieval failure
// degrades to empty data; methods only return errors for invalid arguments or a
// cancelled context.
type Client struct {
	config     Config
	logger     *logger.Logger
	series     provider.SeriesSource
	batch      provider.BatchSource
	sectors    provider.SectorSource
	sleep      Sleeper
	onProgress OnDownloadProgress
}

// NewClient creates a client from config. Strategies not replaced through options are
// built from the configuration.
func NewClient(config Config, log *logger.Logger, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		config:     config,
		logger:     log,
		series:     nil,
		batch:      nil,
		sectors:    nil,
		sleep:      sleepContext,
		onProgress: nil,
	}

	if err := c.buildDefaultSources(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) buildDefaultSources() error {
	httpClient, err := provider.NewHTTPClient(c.config.HTTP.Timeout, c.config.HTTP.Proxy)
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}

	var session *provider.YahooSession
	if c.config.Yahoo.Session {
		session = provider.NewYahooSession(httpClient, c.userAgent(), c.logger.Named("session")).
			WithCrumbHost(c.config.Yahoo.Hosts[0])
	}

	seriesSources := make([]provider.SeriesSource, 0, len(c.config.Yahoo.Hosts)+2)
	sectorSources := make([]provider.SectorSource, 0, len(c.config.Yahoo.Hosts))

	for _, host := range c.config.Yahoo.Hosts {
		seriesSources = append(seriesSources, provider.NewYahooChartSource(host, httpClient, c.userAgent(), session))
		sectorSources = append(sectorSources, provider.NewYahooProfileSource(host, httpClient, c.userAgent(), session))
	}

	seriesSources = append(seriesSources, provider.NewFinanceGoSource())

	if c.config.Polygon.APIKey != "" {
		polygon, err := provider.NewPolygonSource(c.config.Polygon.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create Polygon source: %w", err)
		}

		seriesSources = append(seriesSources, polygon)
	}

	c.series = provider.NewSeriesChain(c.logger.Named("series"), seriesSources...)
	c.sectors = provider.NewSectorChain(c.logger.Named("sector"), sectorSources...)

	if c.config.Download.Batch {
		c.batch = provider.NewYahooSparkSource(c.config.Yahoo.Hosts[0], httpClient, c.userAgent(), session, c.logger.Named("spark"))
	}

	return nil
}

func (c *Client) userAgent() string {
	if c.config.Yahoo.UserAgent == "" {
		return provider.DefaultUserAgent
	}

	return c.config.Yahoo.UserAgent
}

// SourceNames lists the single-symbol strategies in the order they are tried.
func (c *Client) SourceNames() []string {
	if chain, ok := c.series.(*provider.SeriesChain); ok {
		return chain.SourceNames()
	}

	return []string{c.series.Name()}
}

// FetchSeries returns the daily closes of symbol over period from the first strategy
// that yields data. An exhausted chain yields an empty series and no error.
func (c *Client) FetchSeries(ctx context.Context, symbol string, period types.Period) (types.Series, error) {
	if err := period.Validate(); err != nil {
		return types.EmptySeries(symbol), err
	}

	s, err := c.series.FetchSeries(ctx, symbol, period, c.config.Download.Interval)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.EmptySeries(symbol), ctxErr
		}

		c.logger.Debug("series fetch failed",
			zap.String("symbol", symbol),
			zap.Int("code", int(errors.GetCode(err))),
			zap.Error(err),
		)

		return types.EmptySeries(symbol), nil
	}

	if s.Symbol == "" {
		s.Symbol = symbol
	}

	return s, nil
}

// DownloadPrices downloads the closes of every ticker over period into one table aligned
// on dates. Tickers are trimmed and de-duplicated first; tickers without data are absent
// from the table. A batch request is tried first and accepted only when it covers enough
// tickers; otherwise tickers are fetched one by one with a polite delay in between.
func (c *Client) DownloadPrices(ctx context.Context, tickers []string, period types.Period) (*types.Table, error) {
	symbols := types.NormalizeTickers(tickers)
	if len(symbols) == 0 {
		return types.NewTable(nil), nil
	}

	if err := period.Validate(); err != nil {
		return nil, err
	}

	log := c.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.Int("tickers", len(symbols)),
		zap.String("period", string(period)),
	)

	if c.batch != nil {
		table, err := c.downloadBatch(ctx, symbols, period)
		if err == nil {
			log.Info("batch download accepted",
				zap.String("source", c.batch.Name()),
				zap.Int("columns", len(table.Columns())),
			)

			return table, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.Info("batch download rejected, fetching tickers one by one",
			zap.String("source", c.batch.Name()),
			zap.Int("code", int(errors.GetCode(err))),
			zap.Error(err),
		)
	}

	return c.downloadSequential(ctx, symbols, period, log)
}

func (c *Client) downloadBatch(ctx context.Context, symbols []string, period types.Period) (*types.Table, error) {
	series, err := c.batch.FetchBatch(ctx, symbols, period, c.config.Download.Interval)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		requested[s] = true
	}

	kept := make([]types.Series, 0, len(series))

	for _, s := range series {
		if requested[s.Symbol] && !s.Empty() {
			kept = append(kept, s)
		}
	}

	table := types.NewTable(kept)
	required := minCoverage(len(symbols), c.config.Download.MinCoverageRatio)

	if table.Empty() || len(table.Columns()) < required {
		return nil, errors.NewInsufficientCoverageError(required, len(table.Columns()), c.batch.Name())
	}

	return table, nil
}

func (c *Client) downloadSequential(ctx context.Context, symbols []string, period types.Period, log *zap.Logger) (*types.Table, error) {
	total := float64(len(symbols))
	kept := make([]types.Series, 0, len(symbols))

	for i, symbol := range symbols {
		if i > 0 {
			if err := c.sleep(ctx, c.config.Download.PoliteDelay); err != nil {
				return nil, err
			}
		}

		s, err := c.FetchSeries(ctx, symbol, period)
		if err != nil {
			return nil, err
		}

		if s.Empty() {
			log.Warn("no data for ticker", zap.String("symbol", symbol))
		} else {
			kept = append(kept, s)
		}

		if c.onProgress != nil {
			c.onProgress(float64(i+1), total, symbol)
		}
	}

	table := types.NewTable(kept)
	log.Info("sequential download finished", zap.Int("columns", len(table.Columns())))

	return table, nil
}

// FetchBenchmark returns the benchmark index series for market. When the market's own
// benchmark has no data the S&P 500 is used instead.
func (c *Client) FetchBenchmark(ctx context.Context, market types.Market, period types.Period) (types.Series, error) {
	symbol := types.BenchmarkSymbol(market)

	s, err := c.FetchSeries(ctx, symbol, period)
	if err != nil {
		return s, err
	}

	if s.Empty() && symbol != types.DefaultBenchmarkSymbol {
		c.logger.Info("benchmark unavailable, using default",
			zap.String("market", string(market)),
			zap.String("symbol", symbol),
			zap.String("fallback", types.DefaultBenchmarkSymbol),
		)

		return c.FetchSeries(ctx, types.DefaultBenchmarkSymbol, period)
	}

	return s, nil
}

// GetFXSeries returns the USD to INR exchange rate series.
func (c *Client) GetFXSeries(ctx context.Context, period types.Period) (types.Series, error) {
	return c.FetchSeries(ctx, types.FXSymbol, period)
}

// FetchSectorForTickers maps every input ticker to its sector label. Each distinct trimmed
// ticker is looked up once and the result is stored under both the trimmed and the input
// spelling; blank tickers map to UnknownSector without a lookup. Lookups that fail or
// return nothing map to UnknownSector. A cancelled context marks the remaining tickers
// as unknown.
func (c *Client) FetchSectorForTickers(ctx context.Context, tickers []string) map[string]string {
	symbols := types.NormalizeTickers(tickers)
	sectors := make(map[string]string, len(tickers))

	for i, symbol := range symbols {
		sectors[symbol] = UnknownSector

		if ctx.Err() != nil {
			continue
		}

		if i > 0 {
			if err := c.sleep(ctx, c.config.Download.PoliteDelay); err != nil {
				continue
			}
		}

		sector, err := c.sectors.FetchSector(ctx, symbol)
		if err != nil || sector == "" {
			c.logger.Debug("sector lookup failed",
				zap.String("symbol", symbol),
				zap.Int("code", int(errors.GetCode(err))),
				zap.Error(err),
			)

			continue
		}

		sectors[symbol] = sector
	}

	for _, t := range tickers {
		if sector, ok := sectors[strings.TrimSpace(t)]; ok {
			sectors[t] = sector
		} else {
			sectors[t] = UnknownSector
		}
	}

	return sectors
}

// minCoverage is the number of tickers a batch result must cover: ratio of n rounded
// down, at least one.
func minCoverage(n int, ratio float64) int {
	return max(1, int(math.Floor(ratio*float64(n))))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
