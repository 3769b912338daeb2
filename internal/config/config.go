package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_records/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderKindLocal  = "local"
	ProviderKindFile   = "file"
	ProviderKindRemote = "remote"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Data     DataConfig
	Misc     MiscConfig
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

// ProviderConfig selects and configures the record source.
type ProviderConfig struct {
	Kind      string
	FilePath  string
	Watch     bool
	Endpoint  string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

// DataConfig holds the record cache settings.
type DataConfig struct {
	RefreshInterval time.Duration // 0 disables background refresh
}

// MiscConfig holds logging and error reporting settings.
type MiscConfig struct {
	LogLevel          string
	GinMode           string
	HoneybadgerAPIKey string
	HoneybadgerEnv    string
}

// LoadConfig reads .env, config.yaml and GO_RECORDS_* environment variables.
// Environment variables like GO_RECORDS_PROVIDER_KIND override provider.kind.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env file: %v", err)
	}

	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(getEnvOrDefault("GO_RECORDS_CONFIG_PATH", "./config"))
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("GO_RECORDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("misc.honeybadger_api_key", "HONEYBADGER_API_KEY")
	_ = viper.BindEnv("misc.honeybadger_env", "GO_ENV")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Provider: ProviderConfig{
			Kind:      strings.ToLower(strings.TrimSpace(viper.GetString("provider.kind"))),
			FilePath:  viper.GetString("provider.file_path"),
			Watch:     viper.GetBool("provider.watch"),
			Endpoint:  viper.GetString("provider.endpoint"),
			Timeout:   viper.GetDuration("provider.timeout"),
			RateLimit: viper.GetFloat64("provider.rate_limit"),
			RateBurst: viper.GetInt("provider.rate_burst"),
		},
		Data: DataConfig{
			RefreshInterval: viper.GetDuration("data.refresh_interval"),
		},
		Misc: MiscConfig{
			LogLevel:          viper.GetString("misc.log_level"),
			GinMode:           viper.GetString("misc.gin_mode"),
			HoneybadgerAPIKey: viper.GetString("misc.honeybadger_api_key"),
			HoneybadgerEnv:    viper.GetString("misc.honeybadger_env"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 15*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")

	viper.SetDefault("provider.kind", ProviderKindLocal)
	viper.SetDefault("provider.file_path", "./config/data/records.json")
	viper.SetDefault("provider.watch", false)
	viper.SetDefault("provider.endpoint", "https://jsonplaceholder.typicode.com/posts")
	viper.SetDefault("provider.timeout", 10*time.Second)
	viper.SetDefault("provider.rate_limit", 0)
	viper.SetDefault("provider.rate_burst", 1)

	viper.SetDefault("data.refresh_interval", 0)

	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.gin_mode", "release")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server.write_timeout must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return errors.New("server.idle_timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}
	if c.Data.RefreshInterval < 0 {
		return errors.New("data.refresh_interval cannot be negative")
	}
	return c.Provider.Validate()
}

// Validate checks the provider section on its own; the CLI builds a ProviderConfig
// from flags and validates it without a full Config.
func (p ProviderConfig) Validate() error {
	switch p.Kind {
	case ProviderKindLocal:
		return nil
	case ProviderKindFile:
		if strings.TrimSpace(p.FilePath) == "" {
			return errors.New("provider.file_path is required for the file provider")
		}
		return nil
	case ProviderKindRemote:
		u, err := url.Parse(p.Endpoint)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("provider.endpoint must be an absolute http(s) URL, got %q", p.Endpoint)
		}
		if p.Timeout <= 0 {
			return errors.New("provider.timeout must be positive")
		}
		if p.RateLimit < 0 {
			return errors.New("provider.rate_limit cannot be negative")
		}
		if p.RateLimit > 0 && p.RateBurst <= 0 {
			return errors.New("provider.rate_burst must be positive when rate_limit is set")
		}
		return nil
	default:
		return fmt.Errorf("unknown provider kind: %q (supported: %s, %s, %s)",
			p.Kind, ProviderKindLocal, ProviderKindFile, ProviderKindRemote)
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvOrViperPort prefers a plain env var (PORT on most PaaS) over the viper key.
func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envKey, v, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
