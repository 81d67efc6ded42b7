package types

import (
	"math"
	"sort"
	"time"
)

// Point is a single observation of a price series. Time is a UTC calendar date.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is an ordered, gap-free sequence of daily prices for one symbol.
// An empty series means no strategy produced data for the symbol.
type Series struct {
	Symbol string  `json:"symbol"`
	Points []Point `json:"points"`
	// Source names the strategy that produced the points, empty when none did.
	Source string `json:"source,omitempty"`
}

// EmptySeries returns a series with no points for the symbol.
func EmptySeries(symbol string) Series {
	return Series{Symbol: symbol, Points: nil, Source: ""}
}

// NewSeries normalizes raw observations into a Series: non-finite values are dropped,
// times are truncated to their UTC calendar date, duplicate dates keep the last
// observation, and points are sorted ascending.
func NewSeries(symbol string, source string, raw []Point) Series {
	pts := make([]Point, 0, len(raw))

	for _, p := range raw {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}

		pts = append(pts, Point{Time: CalendarDate(p.Time), Value: p.Value})
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })

	deduped := pts[:0]
	for _, p := range pts {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(p.Time) {
			deduped[n-1] = p

			continue
		}

		deduped = append(deduped, p)
	}

	if len(deduped) == 0 {
		return EmptySeries(symbol)
	}

	return Series{Symbol: symbol, Points: deduped, Source: source}
}

// PointsFromUnix zips unix-second timestamps with nullable values. Entries past the
// shorter of the two slices and nil values are skipped.
func PointsFromUnix(timestamps []int64, values []*float64) []Point {
	n := min(len(timestamps), len(values))
	pts := make([]Point, 0, n)

	for i := 0; i < n; i++ {
		if values[i] == nil {
			continue
		}

		pts = append(pts, Point{Time: time.Unix(timestamps[i], 0), Value: *values[i]})
	}

	return pts
}

// CalendarDate truncates t to midnight UTC of its UTC date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Empty reports whether the series has no observations.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Points)
}

// Last returns the most recent observation.
func (s Series) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}

	return s.Points[len(s.Points)-1], true
}
