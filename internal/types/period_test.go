package types

import (
	"testing"
	"time"

	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PeriodTestSuite struct {
	suite.Suite
}

func TestPeriodSuite(t *testing.T) {
	suite.Run(t, new(PeriodTestSuite))
}

func (suite *PeriodTestSuite) TestValidate() {
	valid := []Period{"1d", "5d", "2wk", "6mo", "1y", "10y", "ytd", "max"}
	for _, p := range valid {
		suite.NoError(p.Validate(), "period %q", p)
	}

	invalid := []Period{"", "0d", "1", "y", "1yr", "6m", "-1y", "MAX"}
	for _, p := range invalid {
		err := p.Validate()
		suite.Error(err, "period %q", p)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	}
}

func (suite *PeriodTestSuite) TestStart() {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		period   Period
		expected time.Time
	}{
		{"5d", time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)},
		{"2wk", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"6mo", time.Date(2023, 12, 15, 12, 0, 0, 0, time.UTC)},
		{"1y", time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)},
		{"ytd", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"max", time.Unix(0, 0).UTC()},
		{"bogus", time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		suite.Equal(tc.expected, tc.period.Start(now), "period %q", tc.period)
	}
}

func (suite *PeriodTestSuite) TestIntervalValidate() {
	suite.NoError(IntervalOneDay.Validate())
	suite.NoError(IntervalOneWeek.Validate())
	suite.NoError(IntervalOneMonth.Validate())

	err := Interval("5m").Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidInterval))
}
