package types

import (
	"regexp"
	"strconv"
	"time"

	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// Period is a lookback window such as 5d, 6mo, 1y, ytd or max.
type Period string

// Interval is the sampling interval of a series.
type Interval string

const (
	PeriodOneMonth   Period = "1mo"
	PeriodSixMonths  Period = "6mo"
	PeriodOneYear    Period = "1y"
	PeriodYearToDate Period = "ytd"
	PeriodMax        Period = "max"

	DefaultPeriod = PeriodOneYear
)

const (
	IntervalOneDay   Interval = "1d"
	IntervalOneWeek  Interval = "1wk"
	IntervalOneMonth Interval = "1mo"

	DefaultInterval = IntervalOneDay
)

var periodPattern = regexp.MustCompile(`^([1-9][0-9]*)(d|wk|mo|y)$`)

// Validate checks the period against the lookback grammar accepted by the data sources.
func (p Period) Validate() error {
	if p == PeriodYearToDate || p == PeriodMax {
		return nil
	}

	if !periodPattern.MatchString(string(p)) {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period %q, expected e.g. 5d, 2wk, 6mo, 1y, ytd or max", string(p))
	}

	return nil
}

// Start returns the first instant covered by the period when looking back from now.
// Strategies that take explicit date ranges use it instead of the range string.
// An invalid period is treated as DefaultPeriod.
func (p Period) Start(now time.Time) time.Time {
	now = now.UTC()

	switch p {
	case PeriodYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case PeriodMax:
		return time.Unix(0, 0).UTC()
	}

	m := periodPattern.FindStringSubmatch(string(p))
	if m == nil {
		return now.AddDate(-1, 0, 0)
	}

	n, _ := strconv.Atoi(m[1])

	switch m[2] {
	case "d":
		return now.AddDate(0, 0, -n)
	case "wk":
		return now.AddDate(0, 0, -7*n)
	case "mo":
		return now.AddDate(0, -n, 0)
	default:
		return now.AddDate(-n, 0, 0)
	}
}

// Validate checks that the interval is one of the supported sampling intervals.
func (i Interval) Validate() error {
	switch i {
	case IntervalOneDay, IntervalOneWeek, IntervalOneMonth:
		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidInterval, "invalid interval %q, expected 1d, 1wk or 1mo", string(i))
	}
}
