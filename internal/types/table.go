package types

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// Table aligns several series on a shared ascending date index. Cells without an
// observation are None; rows exist only for dates where at least one column has a value.
type Table struct {
	index   []time.Time
	columns []string
	cells   map[string][]optional.Option[float64]
}

// NewTable aligns the non-empty series on the union of their calendar dates. Each series
// is normalized with NewSeries first, so observations of one day in different locations
// share a row. Columns keep the order of the input; a symbol appearing twice keeps its
// first series.
func NewTable(series []Series) *Table {
	t := &Table{
		index:   nil,
		columns: nil,
		cells:   make(map[string][]optional.Option[float64]),
	}

	dates := make(map[time.Time]struct{})
	kept := make([]Series, 0, len(series))

	for _, s := range series {
		s = NewSeries(s.Symbol, s.Source, s.Points)
		if s.Empty() {
			continue
		}

		if _, dup := t.cells[s.Symbol]; dup {
			continue
		}

		t.cells[s.Symbol] = nil
		t.columns = append(t.columns, s.Symbol)
		kept = append(kept, s)

		for _, p := range s.Points {
			dates[p.Time] = struct{}{}
		}
	}

	t.index = make([]time.Time, 0, len(dates))
	for d := range dates {
		t.index = append(t.index, d)
	}

	sort.Slice(t.index, func(i, j int) bool { return t.index[i].Before(t.index[j]) })

	row := make(map[time.Time]int, len(t.index))
	for i, d := range t.index {
		row[d] = i
	}

	for _, s := range kept {
		col := make([]optional.Option[float64], len(t.index))
		for i := range col {
			col[i] = optional.None[float64]()
		}

		for _, p := range s.Points {
			col[row[p.Time]] = optional.Some(p.Value)
		}

		t.cells[s.Symbol] = col
	}

	return t.dropEmptyRows()
}

// dropEmptyRows removes rows where every column is None.
func (t *Table) dropEmptyRows() *Table {
	keep := make([]int, 0, len(t.index))

	for i := range t.index {
		for _, c := range t.columns {
			if t.cells[c][i].IsSome() {
				keep = append(keep, i)

				break
			}
		}
	}

	if len(keep) == len(t.index) {
		return t
	}

	index := make([]time.Time, len(keep))
	for j, i := range keep {
		index[j] = t.index[i]
	}

	for _, c := range t.columns {
		col := make([]optional.Option[float64], len(keep))
		for j, i := range keep {
			col[j] = t.cells[c][i]
		}

		t.cells[c] = col
	}

	t.index = index

	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.index)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Index returns a copy of the date index.
func (t *Table) Index() []time.Time {
	if t == nil {
		return nil
	}

	return append([]time.Time(nil), t.index...)
}

// Columns returns a copy of the column names in insertion order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}

	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the ticker produced any data.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}

	_, ok := t.cells[name]

	return ok
}

// Value returns the cell at the given column and row, None when missing or out of range.
func (t *Table) Value(column string, row int) optional.Option[float64] {
	if t == nil {
		return optional.None[float64]()
	}

	col, ok := t.cells[column]
	if !ok || row < 0 || row >= len(col) {
		return optional.None[float64]()
	}

	return col[row]
}

// Column returns the observed points of one column as a series.
func (t *Table) Column(name string) (Series, bool) {
	if !t.HasColumn(name) {
		return EmptySeries(name), false
	}

	col := t.cells[name]
	pts := make([]Point, 0, len(col))

	for i, v := range col {
		if v.IsSome() {
			pts = append(pts, Point{Time: t.index[i], Value: v.Unwrap()})
		}
	}

	return Series{Symbol: name, Points: pts, Source: ""}, true
}

// ForwardFill returns a copy where every None cell takes the last value seen above it
// in the same column. Leading gaps stay None.
func (t *Table) ForwardFill() *Table {
	out := &Table{
		index:   t.Index(),
		columns: t.Columns(),
		cells:   make(map[string][]optional.Option[float64], len(t.columns)),
	}

	for _, c := range t.columns {
		src := t.cells[c]
		dst := make([]optional.Option[float64], len(src))
		last := optional.None[float64]()

		for i, v := range src {
			if v.IsSome() {
				last = v
			}

			dst[i] = last
		}

		out.cells[c] = dst
	}

	return out
}

// LatestPrices forward-fills each column and returns the last row. Columns without any
// observation are omitted. An empty table has no last row and yields ErrCodeNoDataFound.
func LatestPrices(t *Table) (map[string]float64, error) {
	if t.Empty() {
		return nil, errors.New(errors.ErrCodeNoDataFound, "cannot take latest prices of an empty table")
	}

	filled := t.ForwardFill()
	last := filled.Len() - 1
	prices := make(map[string]float64, len(filled.columns))

	for _, c := range filled.columns {
		if v := filled.cells[c][last]; v.IsSome() {
			prices[c] = v.Unwrap()
		}
	}

	return prices, nil
}
