package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rxtech-lab/pricefeed/internal/logger"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/internal/version"
	"github.com/rxtech-lab/pricefeed/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

// newClient loads the configuration named by the global flags and builds a client whose
// sequential downloads report progress to stderr.
func newClient(cmd *cli.Command) (*marketdata.Client, *logger.Logger, error) {
	cfg, err := marketdata.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	appLogger, err := logger.NewLoggerWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, err
	}

	progress := newProgressReporter(cmd.Root().ErrWriter)

	client, err := marketdata.NewClient(cfg, appLogger, marketdata.WithProgress(progress.Update))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create market data client: %w", err)
	}

	return client, appLogger, nil
}

func tickersArg(cmd *cli.Command) ([]string, error) {
	tickers := types.NormalizeTickers(cmd.Args().Slice())
	if len(tickers) == 0 {
		return nil, fmt.Errorf("at least one ticker is required")
	}

	return tickers, nil
}

func period(cmd *cli.Command) (types.Period, error) {
	p := types.Period(cmd.String("period"))
	if err := p.Validate(); err != nil {
		return "", err
	}

	return p, nil
}

func marketAction(_ context.Context, cmd *cli.Command) error {
	tickers, err := tickersArg(cmd)
	if err != nil {
		return err
	}

	return renderMarket(cmd.Root().Writer, tickers)
}

func pricesAction(ctx context.Context, cmd *cli.Command) error {
	tickers, err := tickersArg(cmd)
	if err != nil {
		return err
	}

	p, err := period(cmd)
	if err != nil {
		return err
	}

	client, appLogger, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync() //nolint:errcheck

	table, err := client.DownloadPrices(ctx, tickers, p)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	return renderTable(cmd.Root().Writer, table, int(cmd.Int("rows")))
}

func latestAction(ctx context.Context, cmd *cli.Command) error {
	tickers, err := tickersArg(cmd)
	if err != nil {
		return err
	}

	p, err := period(cmd)
	if err != nil {
		return err
	}

	client, appLogger, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync() //nolint:errcheck

	table, err := client.DownloadPrices(ctx, tickers, p)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	latest, err := types.LatestPrices(table)
	if err != nil {
		return err
	}

	return renderLatest(cmd.Root().Writer, tickers, latest)
}

func benchmarkAction(ctx context.Context, cmd *cli.Command) error {
	p, err := period(cmd)
	if err != nil {
		return err
	}

	var market types.Market
	if flag := cmd.String("market"); flag != "" {
		market, err = types.ParseMarket(flag)
		if err != nil {
			return err
		}
	} else {
		market = types.InferMarket(cmd.Args().Slice())
	}

	client, appLogger, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync() //nolint:errcheck

	series, err := client.FetchBenchmark(ctx, market, p)
	if err != nil {
		return err
	}

	return renderSeries(cmd.Root().Writer, series, int(cmd.Int("rows")))
}

func fxAction(ctx context.Context, cmd *cli.Command) error {
	p, err := period(cmd)
	if err != nil {
		return err
	}

	client, appLogger, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync() //nolint:errcheck

	series, err := client.GetFXSeries(ctx, p)
	if err != nil {
		return err
	}

	return renderSeries(cmd.Root().Writer, series, int(cmd.Int("rows")))
}

func sectorsAction(ctx context.Context, cmd *cli.Command) error {
	tickers, err := tickersArg(cmd)
	if err != nil {
		return err
	}

	client, appLogger, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer appLogger.Sync() //nolint:errcheck

	return renderSectors(cmd.Root().Writer, tickers, client.FetchSectorForTickers(ctx, tickers))
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := marketdata.ConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}

func providersAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := marketdata.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	client, err := marketdata.NewClient(cfg, logger.NewNop())
	if err != nil {
		return err
	}

	return renderProviders(cmd.Root().Writer, client.SourceNames())
}

func rowsFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "rows",
		Usage: "Number of most recent rows to print (0 prints all)",
		Value: 10,
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "pricefeed",
		Usage:     "Fetch daily closes for India and US equity portfolios",
		Version:   version.GetVersion(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("PRICEFEED_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Lookback window (5d, 2wk, 6mo, 1y, ytd, max)",
				Value:   string(types.DefaultPeriod),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "market",
				Usage:     "Classify tickers and show the benchmark for the portfolio",
				ArgsUsage: "TICKER...",
				Action:    marketAction,
			},
			{
				Name:      "prices",
				Usage:     "Download aligned daily closes",
				ArgsUsage: "TICKER...",
				Flags:     []cli.Flag{rowsFlag()},
				Action:    pricesAction,
			},
			{
				Name:      "latest",
				Usage:     "Show the latest close of each ticker",
				ArgsUsage: "TICKER...",
				Action:    latestAction,
			},
			{
				Name:      "benchmark",
				Usage:     "Download the benchmark index series",
				ArgsUsage: "[TICKER...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "market",
						Aliases: []string{"m"},
						Usage:   "Market code (IN, US, MIX); inferred from the tickers when omitted",
					},
					rowsFlag(),
				},
				Action: benchmarkAction,
			},
			{
				Name:   "fx",
				Usage:  "Download the USD/INR series",
				Flags:  []cli.Flag{rowsFlag()},
				Action: fxAction,
			},
			{
				Name:      "sectors",
				Usage:     "Look up the sector of each ticker",
				ArgsUsage: "TICKER...",
				Action:    sectorsAction,
			},
			{
				Name:   "providers",
				Usage:  "List the retrieval strategies in the order they are tried",
				Action: providersAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
