package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/version"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()

	for _, name := range []string{"SYMBOL", "LOOKBACK_DAYS", "OUTPUT", "LOG_LEVEL"} {
		suite.T().Setenv(EnvPrefix+"_"+name, "")
		os.Unsetenv(EnvPrefix + "_" + name)
	}
}

func (suite *ConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.dir, "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *ConfigTestSuite) TestDefault() {
	cfg := Default()

	suite.Equal("USDJPY", cfg.Symbol)
	suite.Equal(0, cfg.LookbackDays)
	suite.Require().Len(cfg.Sources, 2)
	suite.Equal("training", cfg.Sources[0].Name)
	suite.Len(cfg.Sources[0].Paths, 2)
	suite.Equal("sample", cfg.Sources[1].Name)
	suite.Equal("info", cfg.Logging.Level)
	suite.Equal(report.DefaultPolicy(), cfg.ToPolicy())
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestLoadWithoutFile() {
	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal(Default(), cfg)
}

func (suite *ConfigTestSuite) TestLoadFileOverridesDefaults() {
	path := suite.writeConfig(`
symbol: EURJPY
lookback_days: 30
sources:
  - name: export
    paths: [deals.parquet]
output: reports/eurjpy.xlsx
policy:
  good: {min_win_rate_pct: 60, min_profit_factor: 2}
  marginal: {min_win_rate_pct: 45, min_profit_factor: 1.1}
logging:
  level: debug
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("EURJPY", cfg.Symbol)
	suite.Equal(30, cfg.LookbackDays)
	suite.Equal([]SourceConfig{{Name: "export", Paths: []string{"deals.parquet"}}}, cfg.Sources)
	suite.Equal("reports/eurjpy.xlsx", cfg.Output)
	suite.Equal("debug", cfg.Logging.Level)
	suite.Empty(cfg.Version)

	policy := cfg.ToPolicy()
	suite.Equal(60.0, policy.Good.MinWinRatePct)
	suite.Equal(1.1, policy.Marginal.MinProfitFactor)
}

func (suite *ConfigTestSuite) TestLoadPartialFileKeepsDefaults() {
	cfg, err := Load(suite.writeConfig("symbol: GBPJPY\n"))
	suite.Require().NoError(err)

	suite.Equal("GBPJPY", cfg.Symbol)
	suite.Len(cfg.Sources, 2)
	suite.Equal(report.DefaultPolicy(), cfg.ToPolicy())
}

func (suite *ConfigTestSuite) TestEnvOverridesFile() {
	path := suite.writeConfig("symbol: EURJPY\nlookback_days: 30\n")
	suite.T().Setenv("TRADESTATS_SYMBOL", "USDJPY")
	suite.T().Setenv("TRADESTATS_LOOKBACK_DAYS", "0")
	suite.T().Setenv("TRADESTATS_OUTPUT", "out.json")
	suite.T().Setenv("TRADESTATS_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("USDJPY", cfg.Symbol)
	suite.Equal(0, cfg.LookbackDays)
	suite.Equal("out.json", cfg.Output)
	suite.Equal("warn", cfg.Logging.Level)
}

func (suite *ConfigTestSuite) TestInvalidEnvValue() {
	suite.T().Setenv("TRADESTATS_LOOKBACK_DAYS", "ninety")

	_, err := Load("")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(suite.dir, "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeConfigNotFound))
}

func (suite *ConfigTestSuite) TestMalformedFile() {
	_, err := Load(suite.writeConfig("symbol: [unterminated\n"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidate() {
	tests := []struct {
		name   string
		mutate func(c *Config)
		code   errors.ErrorCode
	}{
		{name: "negative lookback", mutate: func(c *Config) { c.LookbackDays = -1 }, code: errors.ErrCodeInvalidConfiguration},
		{name: "no sources", mutate: func(c *Config) { c.Sources = nil }, code: errors.ErrCodeInvalidConfiguration},
		{name: "source without name", mutate: func(c *Config) { c.Sources[0].Name = "" }, code: errors.ErrCodeInvalidConfiguration},
		{name: "source without paths", mutate: func(c *Config) { c.Sources[1].Paths = nil }, code: errors.ErrCodeInvalidConfiguration},
		{name: "win rate above 100", mutate: func(c *Config) { c.Policy.Good.MinWinRatePct = 120 }, code: errors.ErrCodeInvalidConfiguration},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, code: errors.ErrCodeInvalidConfiguration},
		{name: "incompatible version", mutate: func(c *Config) { c.Version = "99.0.0" }, code: errors.ErrCodeInvalidVersion},
		{
			name: "good looser than marginal",
			mutate: func(c *Config) {
				c.Policy.Good.MinProfitFactor = 1.1
			},
			code: errors.ErrCodeInvalidThreshold,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			suite.True(errors.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func (suite *ConfigTestSuite) TestSchema() {
	data, err := Schema()
	suite.Require().NoError(err)

	var schema map[string]interface{}
	suite.Require().NoError(json.Unmarshal(data, &schema))

	properties := schema["properties"].(map[string]interface{})
	suite.Contains(properties, "symbol")
	suite.Contains(properties, "lookback_days")
	suite.Contains(properties, "sources")
	suite.Contains(properties, "policy")
}

func (suite *ConfigTestSuite) TestSampleYAMLLoads() {
	data, err := SampleYAML(SchemaFileName)
	suite.Require().NoError(err)
	suite.Contains(string(data), "# yaml-language-server: $schema="+SchemaFileName)

	var cfg Config
	suite.Require().NoError(yaml.Unmarshal(data, &cfg))
	suite.Equal(version.GetVersion(), cfg.Version)

	loaded, err := Load(suite.writeConfig(string(data)))
	suite.Require().NoError(err)
	suite.Equal(Default(), loaded)
}
