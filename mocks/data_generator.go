package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/pricefeed/internal/types"
)

// DataGenerator generates realistic daily close series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a series is generated.
type GeneratorConfig struct {
	// Symbol is the ticker (e.g., "AAPL", "TCS.NS")
	Symbol string
	// Source is recorded in the generated series
	Source string
	// Start is the first calendar date of the series
	Start time.Time
	// Count is the number of trading days to generate
	Count int
	// InitialPrice is the starting close
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift over the whole series (-0.1 to 0.1 for bearish to bullish)
	Trend float64
	// SkipWeekends leaves Saturdays and Sundays out like an exchange calendar
	SkipWeekends bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "TEST",
		Source:       "generated",
		Start:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:        250,
		InitialPrice: 100.0,
		Volatility:   0.01,
		Trend:        0.0,
		SkipWeekends: true,
	}
}

// Generate creates a daily close series following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) types.Series {
	points := make([]types.Point, 0, config.Count)
	price := config.InitialPrice
	day := types.CalendarDate(config.Start)

	for len(points) < config.Count {
		if config.SkipWeekends && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
			day = day.AddDate(0, 0, 1)

			continue
		}

		// Box-Muller transform for a normal draw
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		next := price * (1 + config.Volatility*z + drift)
		if next <= 0 {
			next = price * 0.99
		}

		points = append(points, types.Point{Time: day, Value: roundToDecimals(next, 4)})
		price = next
		day = day.AddDate(0, 0, 1)
	}

	return types.NewSeries(config.Symbol, config.Source, points)
}

// GenerateMultiSymbol generates one series per symbol over the same calendar.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.Series {
	all := make([]types.Series, 0, len(symbols))

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		// Vary initial price and volatility slightly per symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		all = append(all, g.Generate(config))
	}

	return all
}

// GenerateYear is a convenience function for one year of trading days with default settings.
func GenerateYear(symbol string) types.Series {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
