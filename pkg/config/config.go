package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process settings. It is built once in main and passed down.
type Config struct {
	AppName      string   `mapstructure:"app_name"`
	AppVersion   string   `mapstructure:"app_version"`
	Debug        bool     `mapstructure:"debug"`
	APIV1Prefix  string   `mapstructure:"api_v1_prefix"`
	DatabaseURL  string   `mapstructure:"database_url"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	HTTPAddr     string   `mapstructure:"http_addr"`
	LogLevel     string   `mapstructure:"log_level"`
	AuthEnabled  bool     `mapstructure:"auth_enabled"`
	StatsRefresh string   `mapstructure:"stats_refresh_schedule"`

	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "ML Model Registry")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("debug", false)
	v.SetDefault("api_v1_prefix", "/api/v1")
	v.SetDefault("database_url", "sqlite:///./ml_registry.db")
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("http_addr", ":8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("auth_enabled", false)
	v.SetDefault("stats_refresh_schedule", "@every 1m")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", "30m")
}

// Load reads the configuration from the environment. Call godotenv first if
// a .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL must not be empty"))
	}
	if !strings.HasPrefix(c.APIV1Prefix, "/") || strings.HasSuffix(c.APIV1Prefix, "/") {
		errs = append(errs, fmt.Errorf("API_V1_PREFIX %q must start and must not end with '/'", c.APIV1Prefix))
	}
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("CORS_ORIGINS entry %q is not an http(s) origin", origin))
		}
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	return errors.Join(errs...)
}
