package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/schollz/progressbar/v3"
)

// Style definitions.
var (
	// HeaderStyle for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	// CellStyle for table cells.
	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	// MissingStyle for cells without an observation.
	MissingStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

const missingCell = "-"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		})
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// tail returns the index of the first row to print when only the last n rows are shown.
func tail(length, n int) int {
	if n <= 0 || n >= length {
		return 0
	}

	return length - n
}

func renderTable(w io.Writer, t *types.Table, rows int) error {
	if t.Empty() {
		_, err := fmt.Fprintln(w, "no data")

		return err
	}

	columns := t.Columns()
	out := newTable(append([]string{"date"}, columns...)...)
	index := t.Index()

	for i := tail(len(index), rows); i < len(index); i++ {
		row := make([]string, 0, len(columns)+1)
		row = append(row, index[i].Format(time.DateOnly))

		for _, col := range columns {
			if v := t.Value(col, i); v.IsSome() {
				row = append(row, formatPrice(v.Unwrap()))
			} else {
				row = append(row, MissingStyle.Render(missingCell))
			}
		}

		out.Row(row...)
	}

	_, err := fmt.Fprintln(w, out.Render())

	return err
}

func renderSeries(w io.Writer, s types.Series, rows int) error {
	if s.Empty() {
		_, err := fmt.Fprintf(w, "no data for %s\n", s.Symbol)

		return err
	}

	out := newTable("date", s.Symbol)

	for _, p := range s.Points[tail(len(s.Points), rows):] {
		out.Row(p.Time.Format(time.DateOnly), formatPrice(p.Value))
	}

	_, err := fmt.Fprintf(w, "%s\nsource: %s\n", out.Render(), s.Source)

	return err
}

func renderLatest(w io.Writer, tickers []string, latest map[string]float64) error {
	out := newTable("ticker", "latest")

	for _, ticker := range tickers {
		if v, ok := latest[ticker]; ok {
			out.Row(ticker, formatPrice(v))
		} else {
			out.Row(ticker, missingCell)
		}
	}

	_, err := fmt.Fprintln(w, out.Render())

	return err
}

func renderMarket(w io.Writer, tickers []string) error {
	out := newTable("ticker", "market")

	for _, ticker := range tickers {
		market := types.MarketUS
		if types.IsIndiaTicker(ticker) {
			market = types.MarketIndia
		}

		out.Row(ticker, string(market))
	}

	market := types.InferMarket(tickers)

	_, err := fmt.Fprintf(w, "%s\nportfolio market: %s\nbenchmark: %s\n",
		out.Render(), market, types.BenchmarkSymbol(market))

	return err
}

func renderSectors(w io.Writer, tickers []string, sectors map[string]string) error {
	out := newTable("ticker", "sector")

	for _, ticker := range tickers {
		out.Row(ticker, sectors[ticker])
	}

	_, err := fmt.Fprintln(w, out.Render())

	return err
}

func renderProviders(w io.Writer, sources []string) error {
	out := newTable("order", "source")

	for i, name := range sources {
		out.Row(strconv.Itoa(i+1), name)
	}

	_, err := fmt.Fprintln(w, out.Render())

	return err
}

// progressReporter draws a progress bar for sequential downloads. The bar is created on
// the first update because the total is only known then.
type progressReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w, bar: nil}
}

// Update matches marketdata.OnDownloadProgress.
func (p *progressReporter) Update(current float64, total float64, message string) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(int(total),
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	p.bar.Describe(message)
	_ = p.bar.Set(int(current))

	if current >= total {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
