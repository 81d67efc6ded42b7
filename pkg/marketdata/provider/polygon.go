package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// PolygonAggsIterator is the subset of the polygon aggregates iterator used here.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client used here.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRESTClient struct {
	client *polygon.Client
}

func (c *polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return c.client.ListAggs(ctx, params, options...)
}

// PolygonSource fetches split/dividend adjusted aggregates from Polygon.io.
// Polygon only lists US securities; India tickers are skipped without a request.
type PolygonSource struct {
	apiClient PolygonAPIClient
	now       func() time.Time
}

// NewPolygonSource creates a source authenticated with apiKey.
func NewPolygonSource(apiKey string) (*PolygonSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return NewPolygonSourceWithAPI(&polygonRESTClient{client: polygon.New(apiKey)}), nil
}

// NewPolygonSourceWithAPI creates a source with a custom API client, used by tests.
func NewPolygonSourceWithAPI(apiClient PolygonAPIClient) *PolygonSource {
	return &PolygonSource{
		apiClient: apiClient,
		now:       time.Now,
	}
}

// Name implements SeriesSource.
func (s *PolygonSource) Name() string {
	return string(ProviderPolygon)
}

// FetchSeries implements SeriesSource.
func (s *PolygonSource) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.Series, error) {
	if types.IsIndiaTicker(symbol) {
		return types.EmptySeries(symbol), nil
	}

	timespan, err := intervalToTimespan(interval)
	if err != nil {
		return types.EmptySeries(symbol), err
	}

	end := s.now()
	start := period.Start(end)
	adjusted := true
	limit := 50000

	//nolint:exhaustruct // third-party struct with many optional fields
	params := &models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
		Adjusted:   &adjusted,
		Limit:      &limit,
	}

	iter := s.apiClient.ListAggs(ctx, params)

	var pts []types.Point
	for iter.Next() {
		agg := iter.Item()
		pts = append(pts, types.Point{Time: time.Time(agg.Timestamp), Value: agg.Close})
	}

	if iter.Err() != nil {
		return types.EmptySeries(symbol), errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", iter.Err())
	}

	return types.NewSeries(symbol, s.Name(), pts), nil
}

// intervalToTimespan converts a sampling interval to a Polygon timespan.
func intervalToTimespan(interval types.Interval) (models.Timespan, error) {
	switch interval {
	case types.IntervalOneDay:
		return models.Day, nil
	case types.IntervalOneWeek:
		return models.Week, nil
	case types.IntervalOneMonth:
		return models.Month, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for polygon: %s", interval)
	}
}
