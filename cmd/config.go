package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Production is the APP_ENV value where analyses always run on fresh data.
const Production = "production"

// Config holds the application configuration, read from the environment.
type Config struct {
	AlphaVantageAPIKey string `envconfig:"ALPHAVANTAGE_API_KEY"`
	FredAPIKey         string `envconfig:"FRED_API_KEY"`
	AppEnv             string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production"`
	PortfolioFile      string `envconfig:"PORTFOLIO_FILE_NAME" default:"portfolio.csv" validate:"required"`
	DataDir            string `envconfig:"DATA_DIR" default:"data" validate:"required"`
	Benchmark          string `envconfig:"BENCHMARK_SYMBOL" default:"SPY" validate:"required"`
	RiskFreeSeries     string `envconfig:"RISK_FREE_SERIES" default:"DGS1" validate:"required"`
	RequestsPerMinute  int    `envconfig:"ALPHAVANTAGE_RPM" default:"5" validate:"min=1"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool { return c.AppEnv == Production }

// LoadConfig reads the configuration from the environment, after loading envFiles (".env" by default).
//
// Variables already set in the environment take precedence over the files, missing files are ignored.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyFlags overrides the configuration with the global flags that are set.
func (c *Config) applyFlags() {
	override := func(dst *string, flag string) {
		if flag != "" {
			*dst = flag
		}
	}
	override(&c.PortfolioFile, *portfolioFile)
	override(&c.DataDir, *dataDir)
	override(&c.Benchmark, *benchmark)
	override(&c.RiskFreeSeries, *riskFreeSeries)
	if *Verbose {
		c.LogLevel = "debug"
	}
}

// config loads the configuration, applies the global flags and sets the logger up.
func config() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.applyFlags()
	if err := setupLogging(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
