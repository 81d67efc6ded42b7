package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/rxtech-lab/pricefeed/internal/types"
)

// fakeSeriesSource returns a fixed answer and counts calls.
type fakeSeriesSource struct {
	name   string
	series types.Series
	err    error
	calls  int
}

func (f *fakeSeriesSource) Name() string { return f.name }

func (f *fakeSeriesSource) FetchSeries(_ context.Context, symbol string, _ types.Period, _ types.Interval) (types.Series, error) {
	f.calls++
	if f.err != nil {
		return types.EmptySeries(symbol), f.err
	}

	return f.series, nil
}

type fakeSectorSource struct {
	name   string
	sector string
	err    error
	calls  int
}

func (f *fakeSectorSource) Name() string { return f.name }

func (f *fakeSectorSource) FetchSector(_ context.Context, _ string) (string, error) {
	f.calls++

	return f.sector, f.err
}

// recordingServer is an httptest server that records request paths and queries.
type recordingServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []*http.Request
}

func newRecordingServer(handler http.HandlerFunc) *recordingServer {
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.Clone(context.Background()))
		rs.mu.Unlock()
		handler(w, r)
	}))

	return rs
}

func (rs *recordingServer) count() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return len(rs.requests)
}

func (rs *recordingServer) last() *http.Request {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.requests[len(rs.requests)-1]
}

func testDay(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func unixAt(d int) int64 {
	return testDay(d).Add(14*time.Hour + 30*time.Minute).Unix()
}

func testSeries(symbol string, values ...float64) types.Series {
	pts := make([]types.Point, len(values))
	for i, v := range values {
		pts[i] = types.Point{Time: testDay(i + 1), Value: v}
	}

	return types.NewSeries(symbol, "", pts)
}

func (rs *recordingServer) countPath(path string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	n := 0
	for _, r := range rs.requests {
		if r.URL.Path == path {
			n++
		}
	}

	return n
}
