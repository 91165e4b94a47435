// Package config loads process configuration: built-in defaults, then an
// optional YAML file, then VIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/vizboard/vizboard/consts"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VIZ_"

type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Dashboard DashboardConfig `yaml:"dashboard" envPrefix:"DASHBOARD_"`
	Store     StoreConfig     `yaml:"store" envPrefix:"STORE_"`
	Logging   LoggingConfig   `yaml:"logging" envPrefix:"LOG_"`
}

// ServerConfig configures the record source service.
type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT"`
	RateLimit       int           `yaml:"rateLimit" env:"RATE_LIMIT"`
	RateWindow      time.Duration `yaml:"rateWindow" env:"RATE_WINDOW"`
	CORSOrigins     []string      `yaml:"corsOrigins" env:"CORS_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

// DashboardConfig configures the dashboard and where it loads records from.
type DashboardConfig struct {
	Port         string        `yaml:"port" env:"PORT"`
	SourceURL    string        `yaml:"sourceUrl" env:"SOURCE_URL"`
	FetchTimeout time.Duration `yaml:"fetchTimeout" env:"FETCH_TIMEOUT"`
}

// StoreConfig locates the document store and the dataset it is synced from.
type StoreConfig struct {
	DataFolder   string `yaml:"dataFolder" env:"DATA_FOLDER"`
	Database     string `yaml:"database" env:"DATABASE"`
	DatasetFile  string `yaml:"datasetFile" env:"DATASET_FILE"`
	SyncSchedule string `yaml:"syncSchedule" env:"SYNC_SCHEDULE"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// DBPath is the sqlite file inside the data folder.
func (s StoreConfig) DBPath() string {
	return filepath.Join(s.DataFolder, s.Database)
}

// DatasetPath resolves the dataset file relative to the data folder.
func (s StoreConfig) DatasetPath() string {
	if s.DatasetFile == "" || filepath.IsAbs(s.DatasetFile) {
		return s.DatasetFile
	}
	return filepath.Join(s.DataFolder, s.DatasetFile)
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            consts.DefaultServerPort,
			RateLimit:       consts.RateLimitRequests,
			RateWindow:      consts.RateLimitWindow,
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: consts.ShutdownTimeout,
		},
		Dashboard: DashboardConfig{
			Port:         consts.DefaultDashboardPort,
			SourceURL:    consts.DefaultSourceURL,
			FetchTimeout: consts.FetchTimeout,
		},
		Store: StoreConfig{
			DataFolder:   ".",
			Database:     consts.DefaultDatabase,
			DatasetFile:  consts.DefaultDatasetFile,
			SyncSchedule: consts.CronSyncDataset,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Dashboard.Port == "" {
		errs = append(errs, errors.New("dashboard.port is required"))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rateLimit and server.rateWindow must be positive"))
	}
	if u, err := url.Parse(c.Dashboard.SourceURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("dashboard.sourceUrl %q is not an absolute URL", c.Dashboard.SourceURL))
	}
	if c.Store.Database == "" {
		errs = append(errs, errors.New("store.database is required"))
	}
	if c.Store.SyncSchedule != "" {
		if _, err := cron.ParseStandard(c.Store.SyncSchedule); err != nil {
			errs = append(errs, fmt.Errorf("store.syncSchedule: %w", err))
		}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be text or json", c.Logging.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
