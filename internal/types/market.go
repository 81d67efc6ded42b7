package types

import (
	"strings"

	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// Market is the aggregate market code of a ticker set.
type Market string

const (
	MarketIndia Market = "IN"
	MarketUS    Market = "US"
	MarketMixed Market = "MIX"
)

const (
	// DefaultBenchmarkSymbol is the benchmark used for every market without its own entry,
	// and the retry symbol when a market's own benchmark returns no data.
	DefaultBenchmarkSymbol = "^GSPC"
	// FXSymbol is the USD/INR conversion series.
	FXSymbol = "USDINR=X"
)

var indiaSuffixes = []string{".NS", ".BO"}

// benchmarkSymbols maps markets to their benchmark index. Read only.
var benchmarkSymbols = map[Market]string{
	MarketIndia: "^NSEI",
	MarketUS:    DefaultBenchmarkSymbol,
}

// IsIndiaTicker reports whether the ticker is listed on NSE (.NS) or BSE (.BO).
func IsIndiaTicker(ticker string) bool {
	upper := strings.ToUpper(ticker)
	for _, suffix := range indiaSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return true
		}
	}

	return false
}

// InferMarket returns MarketMixed when the tickers span India and non-India listings,
// the single market present otherwise, and MarketUS when no usable ticker is given.
func InferMarket(tickers []string) Market {
	hasIndia, hasOther := false, false

	for _, t := range tickers {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if IsIndiaTicker(t) {
			hasIndia = true
		} else {
			hasOther = true
		}
	}

	switch {
	case hasIndia && hasOther:
		return MarketMixed
	case hasIndia:
		return MarketIndia
	default:
		return MarketUS
	}
}

// ParseMarket parses a market code case-insensitively.
func ParseMarket(s string) (Market, error) {
	switch m := Market(strings.ToUpper(strings.TrimSpace(s))); m {
	case MarketIndia, MarketUS, MarketMixed:
		return m, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidMarket, "unknown market %q, expected IN, US or MIX", s)
	}
}

// BenchmarkSymbol returns the benchmark index symbol for a market, DefaultBenchmarkSymbol
// for markets without an entry (including MarketMixed).
func BenchmarkSymbol(market Market) string {
	if symbol, ok := benchmarkSymbols[market]; ok {
		return symbol
	}

	return DefaultBenchmarkSymbol
}

// NormalizeTickers trims whitespace, drops blanks and removes duplicates while keeping
// the first-seen order. Comparison is case sensitive.
func NormalizeTickers(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))

	for _, t := range tickers {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if _, dup := seen[t]; dup {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
