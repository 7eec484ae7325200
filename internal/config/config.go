package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tilereach/internal/game/geo"
	"github.com/udisondev/tilereach/internal/snapshot"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "TILEREACH_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath is set.
const DefaultPath = "config/tilereach.yaml"

// Tool holds configuration shared by the command line tools.
type Tool struct {
	LogLevel     string         `yaml:"log_level"` // debug, info, warn, error
	Database     DatabaseConfig `yaml:"database"`
	MetricsAddr  string         `yaml:"metrics_addr"` // empty disables the endpoint
	TickInterval time.Duration  `yaml:"tick_interval"`
	RegionCache  CacheConfig    `yaml:"region_cache"`
	Path         PathConfig     `yaml:"path"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// CacheConfig sizes the decoded region cache.
type CacheConfig struct {
	NumCounters int64 `yaml:"num_counters"`
	MaxCost     int64 `yaml:"max_cost"` // bytes
}

// PathConfig tunes the path oracle.
type PathConfig struct {
	MaxSearchTiles int `yaml:"max_search_tiles"`
}

// DefaultTool returns Tool config with sensible defaults.
func DefaultTool() Tool {
	return Tool{
		LogLevel:     "info",
		MetricsAddr:  "",
		TickInterval: 600 * time.Millisecond,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tilereach",
			Password: "tilereach",
			DBName:   "tilereach",
			SSLMode:  "disable",
		},
		RegionCache: CacheConfig{
			NumCounters: snapshot.DefaultCacheConfig.NumCounters,
			MaxCost:     snapshot.DefaultCacheConfig.MaxCost,
		},
		Path: PathConfig{
			MaxSearchTiles: geo.DefaultMaxSearchTiles,
		},
	}
}

// ResolvePath picks the config path: explicit flag first, then EnvPath,
// then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadTool loads tool config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadTool(path string) (Tool, error) {
	cfg := DefaultTool()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("config %s: tick_interval must be positive", path)
	}
	if cfg.Path.MaxSearchTiles <= 0 {
		return cfg, fmt.Errorf("config %s: path.max_search_tiles must be positive", path)
	}

	return cfg, nil
}

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
