package provider

import (
	"context"

	"github.com/rxtech-lab/pricefeed/internal/types"
)

// ProviderType identifies a retrieval strategy family.
type ProviderType string

const (
	ProviderYahooChart   ProviderType = "yahoo-chart"
	ProviderYahooSpark   ProviderType = "yahoo-spark"
	ProviderYahooProfile ProviderType = "yahoo-profile"
	ProviderFinanceGo    ProviderType = "finance-go"
	ProviderPolygon      ProviderType = "polygon"
)

// SeriesSource retrieves a single price series.
//
// Implementations return an error for transport, status and decoding failures and an
// empty series when the source answered without usable observations. Callers treat
// both as "try the next source".
type SeriesSource interface {
	// Name identifies the source in logs and in Series.Source.
	Name() string
	// FetchSeries downloads the adjusted close (or close) series for the symbol.
	// example:
	// FetchSeries(ctx, "RELIANCE.NS", types.PeriodOneYear, types.IntervalOneDay)
	FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.Series, error)
}

// BatchSource retrieves several series in as few requests as the backend allows.
// Symbols without data are simply missing from the result.
type BatchSource interface {
	Name() string
	FetchBatch(ctx context.Context, symbols []string, period types.Period, interval types.Interval) ([]types.Series, error)
}

// SectorSource looks up the sector label of a listed company.
// An empty label with a nil error means the backend has no sector for the symbol.
type SectorSource interface {
	Name() string
	FetchSector(ctx context.Context, symbol string) (string, error)
}
