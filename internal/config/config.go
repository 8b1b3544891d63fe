package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SWAPCPI_SOLANA_RPC.
const EnvPrefix = "SWAPCPI"

// Metrics backends.
const (
	MetricsBackendLog        = "log"
	MetricsBackendPrometheus = "prometheus"
	MetricsBackendNoop       = "noop"
)

// Config holds all configuration for the application
type Config struct {
	Solana  SolanaConfig  `mapstructure:"solana"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// SolanaConfig holds the RPC host settings
type SolanaConfig struct {
	RPC        string  `mapstructure:"rpc"`
	Network    string  `mapstructure:"network"`
	Timeout    int     `mapstructure:"timeout"` // in seconds
	Commitment string  `mapstructure:"commitment"`
	RateLimit  float64 `mapstructure:"rate_limit"` // requests per second, 0 disables
	Keypair    string  `mapstructure:"keypair"`
	Simulate   bool    `mapstructure:"simulate"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// MetricsConfig selects where dispatch metrics go
type MetricsConfig struct {
	Backend   string `mapstructure:"backend"`
	Namespace string `mapstructure:"namespace"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Solana: SolanaConfig{
			Network:    "devnet",
			Timeout:    30,
			Commitment: "confirmed",
			RateLimit:  5,
			Simulate:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Backend:   MetricsBackendLog,
			Namespace: "swapcpi",
		},
	}
}

// Load reads configuration from .env, the config file and the environment,
// in increasing order of precedence. A missing .env or config file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".swapcpi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("solana.rpc", cfg.Solana.RPC)
	v.SetDefault("solana.network", cfg.Solana.Network)
	v.SetDefault("solana.timeout", cfg.Solana.Timeout)
	v.SetDefault("solana.commitment", cfg.Solana.Commitment)
	v.SetDefault("solana.rate_limit", cfg.Solana.RateLimit)
	v.SetDefault("solana.keypair", cfg.Solana.Keypair)
	v.SetDefault("solana.simulate", cfg.Solana.Simulate)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("metrics.backend", cfg.Metrics.Backend)
	v.SetDefault("metrics.namespace", cfg.Metrics.Namespace)
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.Metrics.Backend {
	case MetricsBackendLog, MetricsBackendPrometheus, MetricsBackendNoop:
	default:
		return fmt.Errorf("unknown metrics backend %q", c.Metrics.Backend)
	}
	switch c.Solana.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("unknown commitment %q", c.Solana.Commitment)
	}
	if c.Solana.Timeout <= 0 {
		return fmt.Errorf("solana.timeout must be positive, got %d", c.Solana.Timeout)
	}
	if c.Solana.RateLimit < 0 {
		return fmt.Errorf("solana.rate_limit must not be negative, got %v", c.Solana.RateLimit)
	}
	return nil
}

// GetRPCEndpoint returns the RPC endpoint for the configured network
func (c *SolanaConfig) GetRPCEndpoint() string {
	if c.RPC != "" {
		return c.RPC
	}

	switch c.Network {
	case "mainnet", "mainnet-beta":
		return "https://api.mainnet-beta.solana.com"
	case "testnet":
		return "https://api.testnet.solana.com"
	case "localnet", "localhost":
		return "http://localhost:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}

// RequestTimeout is Timeout as a duration.
func (c *SolanaConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
