package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MAPLEMETRICS_SERVER_ADDRESS
const EnvPrefix = "MAPLEMETRICS"

// AppConfig holds the service-level settings for the CLI and API server
type AppConfig struct {
	Logging       LoggingConfig   `mapstructure:"logging"`
	Server        ServerConfig    `mapstructure:"server"`
	Storage       StorageConfig   `mapstructure:"storage"`
	Redis         RedisConfig     `mapstructure:"redis"`
	Rates         RatesConfig     `mapstructure:"rates"`
	Thresholds    ThresholdConfig `mapstructure:"thresholds"`
	ReferenceFile string          `mapstructure:"reference_file"` // replaces the embedded tables when set
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	RateLimit       int           `mapstructure:"rate_limit"` // requests per client per window; 0 disables
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// StorageConfig selects the snapshot store
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, sqlite
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig configures the live-rate source. An empty address uses static rates.
type RedisConfig struct {
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RatesConfig holds the fallback market assumptions
type RatesConfig struct {
	MortgageRatePercent   float64 `mapstructure:"mortgage_rate_percent"`
	AmortizationYears     int     `mapstructure:"amortization_years"`
	InflationPercent      float64 `mapstructure:"inflation_percent"`
	ExpectedReturnPercent float64 `mapstructure:"expected_return_percent"`
}

// ThresholdConfig holds the affordability limits as percentages of gross income
type ThresholdConfig struct {
	GDS        float64 `mapstructure:"gds"`
	TDS        float64 `mapstructure:"tds"`
	Rent       float64 `mapstructure:"rent"`
	StretchGDS float64 `mapstructure:"stretch_gds"`
	StretchTDS float64 `mapstructure:"stretch_tds"`
}

// DefaultAppConfig returns the settings used when no file or environment override is present
func DefaultAppConfig() AppConfig {
	assumptions := calculation.DefaultAssumptions()
	thresholds := domain.DefaultThresholds()
	return AppConfig{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Server: ServerConfig{
			Address:         ":8080",
			RateLimit:       60,
			RateWindow:      time.Minute,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Storage: StorageConfig{Driver: "memory"},
		Redis:   RedisConfig{KeyPrefix: "maplemetrics:rates:", Timeout: 2 * time.Second},
		Rates: RatesConfig{
			MortgageRatePercent:   assumptions.MortgageRatePercent.InexactFloat64(),
			AmortizationYears:     assumptions.AmortizationYears,
			InflationPercent:      assumptions.InflationPercent.InexactFloat64(),
			ExpectedReturnPercent: assumptions.ExpectedReturnPercent.InexactFloat64(),
		},
		Thresholds: ThresholdConfig{
			GDS:        thresholds.GDS.InexactFloat64(),
			TDS:        thresholds.TDS.InexactFloat64(),
			Rent:       thresholds.Rent.InexactFloat64(),
			StretchGDS: thresholds.StretchGDS.InexactFloat64(),
			StretchTDS: thresholds.StretchTDS.InexactFloat64(),
		},
	}
}

// LoadAppConfig reads configPath (optional) and MAPLEMETRICS_* environment
// variables on top of the defaults.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultAppConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// every key needs a default so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, d AppConfig) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_file", d.Logging.OutputFile)

	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_window", d.Server.RateWindow)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)

	v.SetDefault("redis.address", d.Redis.Address)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.key_prefix", d.Redis.KeyPrefix)
	v.SetDefault("redis.timeout", d.Redis.Timeout)

	v.SetDefault("rates.mortgage_rate_percent", d.Rates.MortgageRatePercent)
	v.SetDefault("rates.amortization_years", d.Rates.AmortizationYears)
	v.SetDefault("rates.inflation_percent", d.Rates.InflationPercent)
	v.SetDefault("rates.expected_return_percent", d.Rates.ExpectedReturnPercent)

	v.SetDefault("thresholds.gds", d.Thresholds.GDS)
	v.SetDefault("thresholds.tds", d.Thresholds.TDS)
	v.SetDefault("thresholds.rent", d.Thresholds.Rent)
	v.SetDefault("thresholds.stretch_gds", d.Thresholds.StretchGDS)
	v.SetDefault("thresholds.stretch_tds", d.Thresholds.StretchTDS)

	v.SetDefault("reference_file", d.ReferenceFile)
}

// Validate checks the configuration for values the services cannot run with
func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return fmt.Errorf("server.rate_window must be positive when rate limiting is enabled")
	}
	if c.Rates.AmortizationYears < 1 || c.Rates.AmortizationYears > 30 {
		return fmt.Errorf("rates.amortization_years must be between 1 and 30")
	}
	if c.Rates.MortgageRatePercent < 0 || c.Rates.InflationPercent < 0 || c.Rates.ExpectedReturnPercent < 0 {
		return fmt.Errorf("rates must not be negative")
	}
	t := c.Thresholds
	if t.GDS <= 0 || t.TDS <= 0 || t.Rent <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	if t.StretchGDS < t.GDS || t.StretchTDS < t.TDS {
		return fmt.Errorf("stretch thresholds must not be below the standard thresholds")
	}
	return nil
}

// Assumptions converts the configured rates to calculation assumptions
func (c *AppConfig) Assumptions() calculation.Assumptions {
	return calculation.Assumptions{
		MortgageRatePercent:   decimal.NewFromFloat(c.Rates.MortgageRatePercent),
		AmortizationYears:     c.Rates.AmortizationYears,
		InflationPercent:      decimal.NewFromFloat(c.Rates.InflationPercent),
		ExpectedReturnPercent: decimal.NewFromFloat(c.Rates.ExpectedReturnPercent),
	}
}

// ThresholdValues converts the configured limits to domain thresholds
func (c *AppConfig) ThresholdValues() domain.Thresholds {
	return domain.Thresholds{
		GDS:        decimal.NewFromFloat(c.Thresholds.GDS),
		TDS:        decimal.NewFromFloat(c.Thresholds.TDS),
		Rent:       decimal.NewFromFloat(c.Thresholds.Rent),
		StretchGDS: decimal.NewFromFloat(c.Thresholds.StretchGDS),
		StretchTDS: decimal.NewFromFloat(c.Thresholds.StretchTDS),
	}
}

// ApplyTo configures an engine with these thresholds and assumptions
func (c *AppConfig) ApplyTo(e *calculation.Engine) {
	e.Thresholds = c.ThresholdValues()
	e.Assumptions = c.Assumptions()
}
