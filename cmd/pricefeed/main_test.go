package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PricefeedCmdTestSuite struct {
	suite.Suite
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func TestPricefeedCmdSuite(t *testing.T) {
	suite.Run(t, new(PricefeedCmdTestSuite))
}

func (suite *PricefeedCmdTestSuite) SetupTest() {
	suite.stdout = &bytes.Buffer{}
	suite.stderr = &bytes.Buffer{}

	for _, key := range []string{"PRICEFEED_CONFIG", "POLYGON_API_KEY", "HTTPS_PROXY", "PRICEFEED_LOG_LEVEL", "PRICEFEED_POLITE_DELAY"} {
		suite.T().Setenv(key, "")
	}
}

func (suite *PricefeedCmdTestSuite) run(args ...string) error {
	return newApp(suite.stdout, suite.stderr).Run(context.Background(), append([]string{"pricefeed"}, args...))
}

func (suite *PricefeedCmdTestSuite) TestMarketCommand() {
	err := suite.run("market", "AAPL", "TCS.NS", " ", "AAPL")
	suite.Require().NoError(err)

	out := suite.stdout.String()
	suite.Contains(out, "TCS.NS")
	suite.Contains(out, "IN")
	suite.Contains(out, "portfolio market: MIX")
	suite.Contains(out, "benchmark: ^GSPC")
	suite.Equal(1, strings.Count(out, "AAPL"))
}

func (suite *PricefeedCmdTestSuite) TestMarketCommand_India() {
	suite.Require().NoError(suite.run("market", "RELIANCE.NS", "500325.BO"))
	suite.Contains(suite.stdout.String(), "benchmark: ^NSEI")
}

func (suite *PricefeedCmdTestSuite) TestTickersRequired() {
	for _, command := range []string{"market", "prices", "latest", "sectors"} {
		suite.Run(command, func() {
			err := suite.run(command)
			suite.Error(err)
			suite.Contains(err.Error(), "at least one ticker is required")
		})
	}
}

func (suite *PricefeedCmdTestSuite) TestInvalidPeriod() {
	err := suite.run("--period", "7x", "prices", "AAPL")
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))
}

func (suite *PricefeedCmdTestSuite) TestBenchmarkInvalidMarket() {
	err := suite.run("benchmark", "--market", "JP")
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidMarket, errors.GetCode(err))
}

func (suite *PricefeedCmdTestSuite) TestSchemaCommand() {
	suite.Require().NoError(suite.run("schema"))

	var doc map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &doc))
	suite.Contains(doc, "properties")
}

func (suite *PricefeedCmdTestSuite) TestProvidersCommand() {
	path := filepath.Join(suite.T().TempDir(), "pricefeed.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("polygon:\n  api_key: test-key\n"), 0o600))

	suite.Require().NoError(suite.run("--config", path, "providers"))

	out := suite.stdout.String()
	suite.Contains(out, "yahoo-chart:query1")
	suite.Contains(out, "yahoo-chart:query2")
	suite.Contains(out, "finance-go")
	suite.Contains(out, "polygon")
	suite.Less(strings.Index(out, "query1"), strings.Index(out, "query2"))
}

func (suite *PricefeedCmdTestSuite) TestInvalidConfigFile() {
	path := filepath.Join(suite.T().TempDir(), "pricefeed.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("download:\n  interval: 5m\n"), 0o600))

	err := suite.run("--config", path, "providers")
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *PricefeedCmdTestSuite) TestVersion() {
	suite.Require().NoError(suite.run("--version"))
	suite.Contains(suite.stdout.String(), "main")
}

type RenderTestSuite struct {
	suite.Suite
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func (suite *RenderTestSuite) TestRenderTable() {
	table := types.NewTable([]types.Series{
		types.NewSeries("AAPL", "test", []types.Point{{Time: day(1), Value: 185.6}, {Time: day(2), Value: 186.25}, {Time: day(3), Value: 187}}),
		types.NewSeries("TCS.NS", "test", []types.Point{{Time: day(2), Value: 3500}}),
	})

	var buf bytes.Buffer
	suite.Require().NoError(renderTable(&buf, table, 2))

	out := buf.String()
	suite.NotContains(out, "2024-01-01")
	suite.Contains(out, "2024-01-02")
	suite.Contains(out, "2024-01-03")
	suite.Contains(out, "186.25")
	suite.Contains(out, "3500.00")
	suite.Contains(out, missingCell)
}

func (suite *RenderTestSuite) TestRenderEmpty() {
	var buf bytes.Buffer
	suite.Require().NoError(renderTable(&buf, types.NewTable(nil), 10))
	suite.Equal("no data\n", buf.String())

	buf.Reset()
	suite.Require().NoError(renderSeries(&buf, types.EmptySeries("^NSEI"), 10))
	suite.Equal("no data for ^NSEI\n", buf.String())
}

func (suite *RenderTestSuite) TestRenderSeries() {
	s := types.NewSeries("USDINR=X", "yahoo-chart:query1", []types.Point{{Time: day(1), Value: 83.12}, {Time: day(2), Value: 83.2}})

	var buf bytes.Buffer
	suite.Require().NoError(renderSeries(&buf, s, 0))

	out := buf.String()
	suite.Contains(out, "83.12")
	suite.Contains(out, "83.20")
	suite.Contains(out, "source: yahoo-chart:query1")
}

func (suite *RenderTestSuite) TestRenderLatestAndSectors() {
	var buf bytes.Buffer
	suite.Require().NoError(renderLatest(&buf, []string{"AAPL", "ZZZZ"}, map[string]float64{"AAPL": 187}))
	suite.Contains(buf.String(), "187.00")
	suite.Contains(buf.String(), "ZZZZ")

	buf.Reset()
	suite.Require().NoError(renderSectors(&buf, []string{"AAPL", "^NSEI"}, map[string]string{"AAPL": "Technology", "^NSEI": "Unknown"}))
	suite.Contains(buf.String(), "Technology")
	suite.Contains(buf.String(), "Unknown")
}

func (suite *RenderTestSuite) TestTail() {
	suite.Equal(0, tail(5, 0))
	suite.Equal(0, tail(5, 10))
	suite.Equal(3, tail(5, 2))
}

func (suite *RenderTestSuite) TestProgressReporter() {
	var buf bytes.Buffer
	progress := newProgressReporter(&buf)

	progress.Update(1, 2, "AAPL")
	suite.NotNil(progress.bar)

	progress.Update(2, 2, "MSFT")
	suite.Nil(progress.bar)
	suite.NotEmpty(buf.String())
}
