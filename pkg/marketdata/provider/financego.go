package provider

import (
	"context"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// FinanceGoBars runs a finance-go chart query and collects every bar.
type FinanceGoBars func(params *chart.Params) ([]finance.ChartBar, error)

// FinanceGoSource fetches a series through the finance-go Yahoo client.
type FinanceGoSource struct {
	bars FinanceGoBars
	now  func() time.Time
}

// NewFinanceGoSource creates a source backed by finance-go's chart iterator.
func NewFinanceGoSource() *FinanceGoSource {
	return NewFinanceGoSourceWithBars(collectChartBars)
}

// NewFinanceGoSourceWithBars creates a source with a custom bar query, used by tests.
func NewFinanceGoSourceWithBars(bars FinanceGoBars) *FinanceGoSource {
	return &FinanceGoSource{
		bars: bars,
		now:  time.Now,
	}
}

func collectChartBars(params *chart.Params) ([]finance.ChartBar, error) {
	iter := chart.Get(params)

	var bars []finance.ChartBar
	for iter.Next() {
		bars = append(bars, *iter.Bar())
	}

	return bars, iter.Err()
}

// Name implements SeriesSource.
func (s *FinanceGoSource) Name() string {
	return string(ProviderFinanceGo)
}

// FetchSeries implements SeriesSource. The finance-go client has no context support, so
// cancellation is only checked before the request.
func (s *FinanceGoSource) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.Series, error) {
	if err := ctx.Err(); err != nil {
		return types.EmptySeries(symbol), err
	}

	end := s.now()
	start := period.Start(end)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	}

	bars, err := s.bars(params)
	if err != nil {
		return types.EmptySeries(symbol), errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "finance-go chart query failed", err)
	}

	return types.NewSeries(symbol, s.Name(), barsToPoints(bars)), nil
}

// barsToPoints prefers the adjusted close of each bar and falls back to the close.
// Bars with neither are skipped.
func barsToPoints(bars []finance.ChartBar) []types.Point {
	pts := make([]types.Point, 0, len(bars))

	for _, b := range bars {
		price := b.AdjClose
		if price.IsZero() {
			price = b.Close
		}

		if price.IsZero() {
			continue
		}

		v, _ := price.Float64()
		pts = append(pts, types.Point{Time: time.Unix(int64(b.Timestamp), 0), Value: v})
	}

	return pts
}
