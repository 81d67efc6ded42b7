package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// DefaultYahooHosts are tried in order by the default series chain.
var DefaultYahooHosts = []string{
	"https://query1.finance.yahoo.com",
	"https://query2.finance.yahoo.com",
}

// yahooChartResult is one symbol's block in chart and spark responses.
type yahooChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooChartResponse is the response structure of the v8 chart endpoint.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

// closes picks the adjusted close array when present, else the raw close array.
func (r yahooChartResult) closes() []*float64 {
	if len(r.Indicators.AdjClose) > 0 && len(r.Indicators.AdjClose[0].AdjClose) > 0 {
		return r.Indicators.AdjClose[0].AdjClose
	}

	if len(r.Indicators.Quote) > 0 && len(r.Indicators.Quote[0].Close) > 0 {
		return r.Indicators.Quote[0].Close
	}

	return nil
}

// series converts the block into a normalized series. Missing timestamps or prices
// yield an empty series.
func (r yahooChartResult) series(symbol, source string) types.Series {
	closes := r.closes()
	if len(r.Timestamp) == 0 || len(closes) == 0 {
		return types.EmptySeries(symbol)
	}

	return types.NewSeries(symbol, source, types.PointsFromUnix(r.Timestamp, closes))
}

func yahooAPIError(e *yahooError) error {
	if strings.EqualFold(e.Code, "Not Found") {
		return errors.Newf(errors.ErrCodeSymbolNotFound, "yahoo: %s", e.Description)
	}

	return errors.Newf(errors.ErrCodeMarketDataParseFailed, "yahoo api error %s: %s", e.Code, e.Description)
}

// YahooChartSource fetches one symbol from the chart endpoint of a single Yahoo host.
type YahooChartSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
	session   *YahooSession
}

// NewYahooChartSource creates a chart source for baseURL (scheme and host, no path).
// session may be nil.
func NewYahooChartSource(baseURL string, client *http.Client, userAgent string, session *YahooSession) *YahooChartSource {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &YahooChartSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		userAgent: userAgent,
		session:   session,
	}
}

// Name implements SeriesSource.
func (s *YahooChartSource) Name() string {
	return string(ProviderYahooChart) + ":" + hostOf(s.baseURL)
}

// FetchSeries implements SeriesSource.
func (s *YahooChartSource) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.Series, error) {
	q := url.Values{}
	q.Set("range", string(period))
	q.Set("interval", string(interval))
	q.Set("includeAdjustedClose", "true")

	if s.session != nil {
		if crumb := s.session.Crumb(ctx); crumb != "" {
			q.Set("crumb", crumb)
		}
	}

	endpoint := s.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + q.Encode()

	body, err := get(ctx, s.client, endpoint, s.userAgent)
	if err != nil {
		if s.session != nil && isUnauthorized(err) {
			s.session.Invalidate()
		}

		return types.EmptySeries(symbol), err
	}

	var chart yahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return types.EmptySeries(symbol), errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode chart response", err)
	}

	if chart.Chart.Error != nil {
		return types.EmptySeries(symbol), yahooAPIError(chart.Chart.Error)
	}

	if len(chart.Chart.Result) == 0 {
		return types.EmptySeries(symbol), errors.Newf(errors.ErrCodeMarketDataParseFailed, "chart response for %s has no result", symbol)
	}

	return chart.Chart.Result[0].series(symbol, s.Name()), nil
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}

	return strings.SplitN(u.Host, ".", 2)[0]
}
