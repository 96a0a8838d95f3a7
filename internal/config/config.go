package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/version"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding the config,
// e.g. TRADESTATS_SYMBOL.
const EnvPrefix = "TRADESTATS"

// Config represents the analyzer configuration.
type Config struct {
	Version      string         `yaml:"version" json:"version,omitempty" jsonschema:"title=Version,description=Analyzer version the file was written for"`
	Symbol       string         `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Symbol to analyze (empty keeps every symbol),default=USDJPY"`
	LookbackDays int            `yaml:"lookback_days" json:"lookback_days" jsonschema:"title=Lookback Days,description=Only deals closed in the last N days are analyzed (0 keeps the whole history),minimum=0" validate:"gte=0"`
	Sources      []SourceConfig `yaml:"sources" json:"sources" jsonschema:"title=Sources,description=Trade history sources tried in order until one loads,minItems=1" validate:"min=1,dive"`
	Output       string         `yaml:"output" json:"output,omitempty" jsonschema:"title=Output,description=Report file; the extension picks the format (txt yaml json xlsx)"`
	Policy       PolicyConfig   `yaml:"policy" json:"policy" jsonschema:"title=Policy,description=Verdict thresholds"`
	Logging      LoggingConfig  `yaml:"logging" json:"logging" jsonschema:"title=Logging"`
}

// SourceConfig is one trade history source. Its files are read together
// and matched by column name.
type SourceConfig struct {
	Name  string   `yaml:"name" json:"name" jsonschema:"title=Name,description=Name shown in logs and reports,required" validate:"required"`
	Paths []string `yaml:"paths" json:"paths" jsonschema:"title=Paths,description=CSV or Parquet deal exports,required,minItems=1" validate:"min=1,dive,required"`
}

// PolicyConfig holds the verdict thresholds.
type PolicyConfig struct {
	Good     ThresholdConfig `yaml:"good" json:"good" jsonschema:"title=Good,description=Minimums for a good verdict"`
	Marginal ThresholdConfig `yaml:"marginal" json:"marginal" jsonschema:"title=Marginal,description=Minimums for a marginal verdict"`
}

// ThresholdConfig is the minimum performance for a verdict.
type ThresholdConfig struct {
	MinWinRatePct   float64 `yaml:"min_win_rate_pct" json:"min_win_rate_pct" jsonschema:"title=Minimum Win Rate,description=Win rate in percent,minimum=0,maximum=100" validate:"gte=0,lte=100"`
	MinProfitFactor float64 `yaml:"min_profit_factor" json:"min_profit_factor" jsonschema:"title=Minimum Profit Factor,minimum=0" validate:"gte=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"omitempty,oneof=debug info warn warning error"`
}

// envOverrides are the settings that can be changed through the environment.
type envOverrides struct {
	Symbol       *string `envconfig:"SYMBOL"`
	LookbackDays *int    `envconfig:"LOOKBACK_DAYS"`
	Output       *string `envconfig:"OUTPUT"`
	LogLevel     *string `envconfig:"LOG_LEVEL"`
}

// Default returns the stock configuration: the training exports first,
// then the generated sample.
func Default() Config {
	policy := report.DefaultPolicy()

	return Config{
		Version:      version.GetVersion(),
		Symbol:       "USDJPY",
		LookbackDays: 0,
		Sources: []SourceConfig{
			{
				Name: "training",
				Paths: []string{
					"data/trades/latest_entry_training.csv",
					"data/trades/latest_exit_training.csv",
				},
			},
			{
				Name:  "sample",
				Paths: []string{"data/trades/usdjpy_sample_trades.csv"},
			},
		},
		Output: "",
		Policy: PolicyConfig{
			Good:     thresholdConfig(policy.Good),
			Marginal: thresholdConfig(policy.Marginal),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration. Values in the file replace the defaults,
// and environment variables replace both. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return Config{}, errors.Newf(errors.ErrCodeConfigNotFound, "config file not found: %s", path)
			}

			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		// the file version is checked, not the default one
		cfg.Version = ""

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	good, marginal := c.Policy.Good, c.Policy.Marginal
	if good.MinWinRatePct < marginal.MinWinRatePct || good.MinProfitFactor < marginal.MinProfitFactor {
		return errors.New(errors.ErrCodeInvalidThreshold,
			"good thresholds must be at least as strict as marginal thresholds")
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid log level", err)
	}

	return nil
}

// ToPolicy returns the verdict policy described by the config.
func (c Config) ToPolicy() report.Policy {
	return report.Policy{
		Good: report.Threshold{
			MinWinRatePct:   c.Policy.Good.MinWinRatePct,
			MinProfitFactor: c.Policy.Good.MinProfitFactor,
		},
		Marginal: report.Threshold{
			MinWinRatePct:   c.Policy.Marginal.MinWinRatePct,
			MinProfitFactor: c.Policy.Marginal.MinProfitFactor,
		},
	}
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to load config from env", err)
	}

	if env.Symbol != nil {
		c.Symbol = *env.Symbol
	}

	if env.LookbackDays != nil {
		c.LookbackDays = *env.LookbackDays
	}

	if env.Output != nil {
		c.Output = *env.Output
	}

	if env.LogLevel != nil {
		c.Logging.Level = *env.LogLevel
	}

	return nil
}

func thresholdConfig(threshold report.Threshold) ThresholdConfig {
	return ThresholdConfig{
		MinWinRatePct:   threshold.MinWinRatePct,
		MinProfitFactor: threshold.MinProfitFactor,
	}
}
