package marketdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/pricefeed/internal/types"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"github.com/rxtech-lab/pricefeed/pkg/marketdata/provider"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPoliteDelay is the pause between consecutive per-ticker requests.
	DefaultPoliteDelay = 200 * time.Millisecond
	// DefaultMinCoverageRatio is the share of tickers a batch download must cover.
	DefaultMinCoverageRatio = 0.4
)

// Environment variables that override values from the config file.
const (
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	EnvHTTPSProxy    = "HTTPS_PROXY"
	EnvLogLevel      = "PRICEFEED_LOG_LEVEL"
	EnvPoliteDelay   = "PRICEFEED_POLITE_DELAY"
)

// YahooConfig configures the Yahoo Finance strategies.
type YahooConfig struct {
	Hosts     []string `yaml:"hosts" json:"hosts" jsonschema:"title=Hosts,description=Yahoo API hosts tried in order" validate:"required,min=1,dive,url"`
	UserAgent string   `yaml:"user_agent" json:"user_agent" jsonschema:"title=User Agent,description=User-Agent header sent on every request"`
	Session   bool     `yaml:"session" json:"session" jsonschema:"title=Session,description=Run the cookie and crumb handshake before requests"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"title=Timeout,description=Per-request timeout" validate:"gte=0"`
	Proxy   string        `yaml:"proxy" json:"proxy" jsonschema:"title=Proxy,description=HTTP proxy URL" validate:"omitempty,url"`
}

// DownloadConfig configures portfolio downloads.
type DownloadConfig struct {
	Interval         types.Interval `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Sampling interval,enum=1d,enum=1wk,enum=1mo" validate:"required,oneof=1d 1wk 1mo"`
	PoliteDelay      time.Duration  `yaml:"polite_delay" json:"polite_delay" jsonschema:"title=Polite Delay,description=Pause between sequential requests" validate:"gte=0"`
	MinCoverageRatio float64        `yaml:"min_coverage_ratio" json:"min_coverage_ratio" jsonschema:"title=Minimum Coverage Ratio,description=Share of tickers a batch download must cover,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	Batch            bool           `yaml:"batch" json:"batch" jsonschema:"title=Batch,description=Try the multi-symbol endpoint before per-ticker requests"`
}

// PolygonConfig configures the optional Polygon.io strategy.
type PolygonConfig struct {
	APIKey string `yaml:"api_key" json:"api_key" jsonschema:"title=API Key,description=Polygon.io API key; the strategy is disabled when empty"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" jsonschema:"title=Format,enum=json,enum=console" validate:"required,oneof=json console"`
}

// Config is the configuration of the market data client.
type Config struct {
	Yahoo    YahooConfig    `yaml:"yahoo" json:"yahoo"`
	HTTP     HTTPConfig     `yaml:"http" json:"http"`
	Download DownloadConfig `yaml:"download" json:"download"`
	Polygon  PolygonConfig  `yaml:"polygon" json:"polygon"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Yahoo: YahooConfig{
			Hosts:     append([]string(nil), provider.DefaultYahooHosts...),
			UserAgent: provider.DefaultUserAgent,
			Session:   true,
		},
		HTTP: HTTPConfig{
			Timeout: provider.DefaultTimeout,
			Proxy:   "",
		},
		Download: DownloadConfig{
			Interval:         types.DefaultInterval,
			PoliteDelay:      DefaultPoliteDelay,
			MinCoverageRatio: DefaultMinCoverageRatio,
			Batch:            true,
		},
		Polygon: PolygonConfig{
			APIKey: "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults, applies environment
// overrides and validates the result. An empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)

		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPolygonAPIKey); v != "" {
		c.Polygon.APIKey = v
	}

	if v := getenv(EnvHTTPSProxy); v != "" && c.HTTP.Proxy == "" {
		c.HTTP.Proxy = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}

	if v := getenv(EnvPoliteDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s", EnvPoliteDelay)
		}

		c.Download.PoliteDelay = d
	}

	return nil
}

// Validate checks the struct tags of the configuration.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// ConfigSchema returns the JSON schema of Config.
func ConfigSchema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.FieldNameTag = "yaml"

	//nolint:exhaustruct // Empty struct is intentional for schema generation
	schema := r.Reflect(Config{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
