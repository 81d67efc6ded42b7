package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rxtech-lab/pricefeed/internal/logger"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"go.uber.org/zap"
)

// DefaultSparkChunkSize is the largest symbol list the spark endpoint accepts per request.
const DefaultSparkChunkSize = 20

// yahooSparkResponse is the response structure of the v7 spark endpoint.
type yahooSparkResponse struct {
	Spark struct {
		Result []struct {
			Symbol   string             `json:"symbol"`
			Response []yahooChartResult `json:"response"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"spark"`
}

// YahooSparkSource downloads many symbols per request from the spark endpoint.
type YahooSparkSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
	session   *YahooSession
	chunkSize int
	logger    *logger.Logger
}

// NewYahooSparkSource creates a batch source for baseURL. session may be nil.
func NewYahooSparkSource(baseURL string, client *http.Client, userAgent string, session *YahooSession, log *logger.Logger) *YahooSparkSource {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &YahooSparkSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		userAgent: userAgent,
		session:   session,
		chunkSize: DefaultSparkChunkSize,
		logger:    log,
	}
}

// WithChunkSize overrides the number of symbols per request.
func (s *YahooSparkSource) WithChunkSize(n int) *YahooSparkSource {
	if n > 0 {
		s.chunkSize = n
	}

	return s
}

// Name implements BatchSource.
func (s *YahooSparkSource) Name() string {
	return string(ProviderYahooSpark) + ":" + hostOf(s.baseURL)
}

// FetchBatch implements BatchSource. Chunks are requested in order; a failed chunk is
// logged and skipped. The error of the last failed chunk is returned only when no
// chunk produced any series.
func (s *YahooSparkSource) FetchBatch(ctx context.Context, symbols []string, period types.Period, interval types.Interval) ([]types.Series, error) {
	var (
		out     []types.Series
		lastErr error
	)

	for start := 0; start < len(symbols); start += s.chunkSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		end := min(start+s.chunkSize, len(symbols))

		chunk, err := s.fetchChunk(ctx, symbols[start:end], period, interval)
		if err != nil {
			s.logger.Debug("spark chunk failed",
				zap.Strings("symbols", symbols[start:end]),
				zap.Error(err),
			)

			lastErr = err

			continue
		}

		out = append(out, chunk...)
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}

	return out, nil
}

func (s *YahooSparkSource) fetchChunk(ctx context.Context, symbols []string, period types.Period, interval types.Interval) ([]types.Series, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("range", string(period))
	q.Set("interval", string(interval))
	q.Set("includeAdjustedClose", "true")

	if s.session != nil {
		if crumb := s.session.Crumb(ctx); crumb != "" {
			q.Set("crumb", crumb)
		}
	}

	body, err := get(ctx, s.client, s.baseURL+"/v7/finance/spark?"+q.Encode(), s.userAgent)
	if err != nil {
		if s.session != nil && isUnauthorized(err) {
			s.session.Invalidate()
		}

		return nil, err
	}

	var spark yahooSparkResponse
	if err := json.Unmarshal(body, &spark); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode spark response", err)
	}

	if spark.Spark.Error != nil {
		return nil, yahooAPIError(spark.Spark.Error)
	}

	// Yahoo echoes symbols upper-cased; map them back to the spelling that was asked for.
	requested := make(map[string][]string, len(symbols))
	for _, sym := range symbols {
		key := strings.ToUpper(sym)
		requested[key] = append(requested[key], sym)
	}

	out := make([]types.Series, 0, len(spark.Spark.Result))

	for _, r := range spark.Spark.Result {
		if len(r.Response) == 0 {
			continue
		}

		for _, sym := range requested[strings.ToUpper(r.Symbol)] {
			series := r.Response[0].series(sym, s.Name())
			if !series.Empty() {
				out = append(out, series)
			}
		}
	}

	return out, nil
}
