package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Address pool sources. Any other ADDRESS_SOURCE value is treated as a URL
// the address loader can fetch (file://, http(s)://, mem://, s3://...).
const (
	AddressEmbedded = "embedded"
	AddressFake     = "fake"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	DBSchema       string        `mapstructure:"DB_SCHEMA"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	BasicAuthUser  string        `mapstructure:"BASIC_AUTH_USER"`
	BasicAuthPass  string        `mapstructure:"BASIC_AUTH_PASS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	BodyLimit      string        `mapstructure:"BODY_LIMIT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	AddressSource    string `mapstructure:"ADDRESS_SOURCE"`
	FakeAddressCount int    `mapstructure:"FAKE_ADDRESS_COUNT"`
	RandomSeed       int64  `mapstructure:"RANDOM_SEED"`
	OutputDir        string `mapstructure:"OUTPUT_DIR"`
	MaxBatchCount    int    `mapstructure:"MAX_BATCH_COUNT"`
}

var keys = []string{
	"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA",
	"CORS_ORIGINS", "BASIC_AUTH_USER", "BASIC_AUTH_PASS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"BODY_LIMIT", "REQUEST_TIMEOUT", "ADDRESS_SOURCE", "FAKE_ADDRESS_COUNT", "RANDOM_SEED",
	"OUTPUT_DIR", "MAX_BATCH_COUNT",
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5000")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("BODY_LIMIT", "2M")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("ADDRESS_SOURCE", AddressEmbedded)
	v.SetDefault("FAKE_ADDRESS_COUNT", 50)
	v.SetDefault("RANDOM_SEED", 0)
	v.SetDefault("OUTPUT_DIR", ".")
	v.SetDefault("MAX_BATCH_COUNT", 10000)

	// Unmarshal only sees env vars that are bound.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDatabase reports whether the credential store is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.BasicAuthUser != "" && c.BasicAuthPass == "" {
		return fmt.Errorf("BASIC_AUTH_PASS is required when BASIC_AUTH_USER is set")
	}
	if c.IsProduction() && c.HasDatabase() && c.BasicAuthUser == "" {
		return fmt.Errorf("BASIC_AUTH_USER is required in production when DATABASE_URL is set")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.MaxBatchCount < 0 {
		return fmt.Errorf("MAX_BATCH_COUNT must not be negative, got %d", c.MaxBatchCount)
	}
	if c.AddressSource == AddressFake && c.FakeAddressCount <= 0 {
		return fmt.Errorf("FAKE_ADDRESS_COUNT must be positive when ADDRESS_SOURCE is %q", AddressFake)
	}
	if c.AddressSource == "" {
		return fmt.Errorf("ADDRESS_SOURCE must not be empty")
	}
	return nil
}
