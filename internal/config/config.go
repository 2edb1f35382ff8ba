package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pulse-insights-go/internal/store"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRemote = "remote"
)

type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	HTTP struct {
		Port             int           `yaml:"port"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		SubmitRatePerSec float64       `yaml:"submit_rate_per_sec"`
		SubmitBurst      int           `yaml:"submit_burst"`
	} `yaml:"http"`

	Store struct {
		Driver     string        `yaml:"driver"`
		SQLitePath string        `yaml:"sqlite_path"`
		RemoteURL  string        `yaml:"remote_url"`
		RemotePath string        `yaml:"remote_path"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout"`
		WaitReady  time.Duration `yaml:"wait_ready"`
	} `yaml:"store"`

	Views struct {
		DashboardLimit int    `yaml:"dashboard_limit"`
		AnalyticsLimit int    `yaml:"analytics_limit"`
		Timezone       string `yaml:"timezone"`
	} `yaml:"views"`
}

func Default() Config {
	var c Config
	c.Environment = "local"
	c.LogLevel = "info"
	c.HTTP.Port = 8080
	c.HTTP.ReadTimeout = 15 * time.Second
	c.HTTP.WriteTimeout = 60 * time.Second
	c.HTTP.SubmitRatePerSec = 5
	c.HTTP.SubmitBurst = 10
	c.Store.Driver = DriverMemory
	c.Store.SQLitePath = "pulse.db"
	c.Store.Timeout = 12 * time.Second
	c.Store.WaitReady = 30 * time.Second
	c.Views.DashboardLimit = store.DashboardLimit
	c.Views.AnalyticsLimit = store.AnalyticsLimit
	return c
}

// Load layers defaults, the optional YAML file at path, then environment
// overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("ENVIRONMENT", &c.Environment)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("PULSE_STORE_DRIVER", &c.Store.Driver)
	setString("PULSE_SQLITE_PATH", &c.Store.SQLitePath)
	setString("PULSE_STORE_URL", &c.Store.RemoteURL)
	setString("PULSE_STORE_PATH", &c.Store.RemotePath)
	setString("PULSE_STORE_API_KEY", &c.Store.APIKey)
	setString("PULSE_TIMEZONE", &c.Views.Timezone)

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.HTTP.Port = p
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.SubmitRatePerSec < 0 || c.HTTP.SubmitBurst < 0 {
		errs = append(errs, errors.New("http submit rate and burst must not be negative"))
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite driver"))
		}
	case DriverRemote:
		if c.Store.RemoteURL == "" {
			errs = append(errs, errors.New("store.remote_url is required for the remote driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q unknown (memory, sqlite, remote)", c.Store.Driver))
	}
	if c.Views.DashboardLimit <= 0 || c.Views.AnalyticsLimit <= 0 {
		errs = append(errs, errors.New("views limits must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location is the zone used for "today" and day labels; empty means local.
func (c Config) Location() (*time.Location, error) {
	if c.Views.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Views.Timezone)
	if err != nil {
		return nil, fmt.Errorf("views.timezone: %w", err)
	}
	return loc, nil
}
