package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "mapty/internal/platform/errors"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	MinZoom = 0
	MaxZoom = 18

	EnvLat = "MAPTY_LAT"
	EnvLng = "MAPTY_LNG"
)

// Location is the position the locator reports as "current".
type Location struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type Config struct {
	Home          *Location     `yaml:"home,omitempty"`
	Zoom          int           `yaml:"zoom"`
	LocateTimeout time.Duration `yaml:"locate_timeout"`
	Store         string        `yaml:"store"`
	LogLevel      string        `yaml:"log_level"`
	LogFile       string        `yaml:"log_file,omitempty"`
	MetricsAddr   string        `yaml:"metrics_addr,omitempty"`
}

func Default() Config {
	return Config{
		Zoom:          12,
		LocateTimeout: 5 * time.Second,
		Store:         StoreMemory,
		LogLevel:      "info",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/mapty/config.yaml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mapty", "config.yaml")
}

// Load reads path over the defaults. A missing file is only an error when
// the caller asked for that file explicitly.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides the home location from MAPTY_LAT/MAPTY_LNG. Both must be
// set for the override to apply.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	rawLat := strings.TrimSpace(getenv(EnvLat))
	rawLng := strings.TrimSpace(getenv(EnvLng))
	if rawLat == "" && rawLng == "" {
		return nil
	}
	if rawLat == "" || rawLng == "" {
		return fmt.Errorf("%w: %s and %s must be set together", apperrors.ErrInvalidInput, EnvLat, EnvLng)
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, EnvLat, err)
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, EnvLng, err)
	}
	c.Home = &Location{Lat: lat, Lng: lng}
	return nil
}

func (c Config) Validate() error {
	if c.Zoom < MinZoom || c.Zoom > MaxZoom {
		return fmt.Errorf("%w: zoom must be between %d and %d, got %d", apperrors.ErrInvalidInput, MinZoom, MaxZoom, c.Zoom)
	}
	if c.LocateTimeout < 0 {
		return fmt.Errorf("%w: locate timeout must not be negative", apperrors.ErrInvalidInput)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("%w: unsupported store %q", apperrors.ErrInvalidInput, c.Store)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("%w: unsupported log level %q", apperrors.ErrInvalidInput, c.LogLevel)
	}
	if c.Home != nil {
		if !finite(c.Home.Lat) || !finite(c.Home.Lng) || math.Abs(c.Home.Lat) > 90 || math.Abs(c.Home.Lng) > 180 {
			return fmt.Errorf("%w: home location %v,%v is out of range", apperrors.ErrInvalidInput, c.Home.Lat, c.Home.Lng)
		}
	}
	return nil
}

func (c Config) Marshal() (string, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(raw), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
