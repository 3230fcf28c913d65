package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get the configured satellite table, in display order
	GetSatellites() ([]SatelliteData, error)

	IsReadOnly() bool
	Close() error
}

// Built-in defaults, used for any value the configuration source leaves empty
const (
	DefaultN2YOEndpoint      = "https://api.n2yo.com/rest/v1"
	DefaultGeocoderEndpoint  = "https://nominatim.openstreetmap.org"
	DefaultGeocoderUserAgent = "SatelliteTracker/1.0"
	DefaultDays              = 7
	DefaultMinElevation      = 30.0
	DefaultTimeout           = "10s"
	DefaultWorkers           = 1
	DefaultFormat            = "text"
)

// APIKeyEnv names the environment variable that overrides the N2YO API key
const APIKeyEnv = "N2YO_API_KEY"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigData represents the complete configuration structure
type ConfigData struct {
	N2YO       N2YOData        `json:"n2yo"`
	Geocoder   GeocoderData    `json:"geocoder"`
	Defaults   DefaultsData    `json:"defaults"`
	Satellites []SatelliteData `json:"satellites,omitempty"`
}

// N2YOData holds the pass-prediction and satellite-metadata provider settings
type N2YOData struct {
	APIKey      string `json:"api_key,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty"`
}

// GeocoderData holds the place-name search settings
type GeocoderData struct {
	APIEndpoint string `json:"api_endpoint,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}

// DefaultsData holds run parameters that command-line flags may override
type DefaultsData struct {
	Days         int     `json:"days,omitempty"`
	MinElevation float64 `json:"min_elevation,omitempty"`
	Timeout      string  `json:"timeout,omitempty"`
	Workers      int     `json:"workers,omitempty"`
	Format       string  `json:"format,omitempty"`
}

// SatelliteData is one entry of the configured satellite table
type SatelliteData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Default returns a configuration made only of built-in defaults
func Default() *ConfigData {
	c := &ConfigData{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every empty setting with its built-in default.
// A zero MinElevation counts as unset; pass -min-elevation 0 to get passes
// from the horizon up.
func (c *ConfigData) ApplyDefaults() {
	if c.N2YO.APIEndpoint == "" {
		c.N2YO.APIEndpoint = DefaultN2YOEndpoint
	}
	if c.Geocoder.APIEndpoint == "" {
		c.Geocoder.APIEndpoint = DefaultGeocoderEndpoint
	}
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = DefaultGeocoderUserAgent
	}
	if c.Defaults.Days == 0 {
		c.Defaults.Days = DefaultDays
	}
	if c.Defaults.MinElevation == 0 {
		c.Defaults.MinElevation = DefaultMinElevation
	}
	if c.Defaults.Timeout == "" {
		c.Defaults.Timeout = DefaultTimeout
	}
	if c.Defaults.Workers == 0 {
		c.Defaults.Workers = DefaultWorkers
	}
	if c.Defaults.Format == "" {
		c.Defaults.Format = DefaultFormat
	}
}

// ApplyEnv lets the environment override secrets, the way the API key has
// always been supplied. getenv is usually os.Getenv.
func (c *ConfigData) ApplyEnv(getenv func(string) string) {
	if key := getenv(APIKeyEnv); key != "" {
		c.N2YO.APIKey = key
	}
}

// TimeoutDuration parses the configured HTTP timeout
func (c *ConfigData) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Defaults.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidConfig, c.Defaults.Timeout, err)
	}
	return d, nil
}

// Validate checks the configuration after defaults, environment and flags
// have been applied
func (c *ConfigData) Validate() error {
	if c.Defaults.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1, got %d", ErrInvalidConfig, c.Defaults.Days)
	}
	if c.Defaults.MinElevation < 0 || c.Defaults.MinElevation > 90 {
		return fmt.Errorf("%w: minimum elevation must be between 0 and 90 degrees, got %v", ErrInvalidConfig, c.Defaults.MinElevation)
	}
	if c.Defaults.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Defaults.Workers)
	}
	if d, err := c.TimeoutDuration(); err != nil {
		return err
	} else if d <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Defaults.Timeout)
	}

	switch c.Defaults.Format {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("%w: unsupported format %q (use text, json or msgpack)", ErrInvalidConfig, c.Defaults.Format)
	}

	seen := make(map[int]bool, len(c.Satellites))
	for _, sat := range c.Satellites {
		if sat.ID <= 0 {
			return fmt.Errorf("%w: satellite id must be positive, got %d", ErrInvalidConfig, sat.ID)
		}
		if strings.TrimSpace(sat.Name) == "" {
			return fmt.Errorf("%w: satellite %d has no name", ErrInvalidConfig, sat.ID)
		}
		if seen[sat.ID] {
			return fmt.Errorf("%w: satellite %d listed more than once", ErrInvalidConfig, sat.ID)
		}
		seen[sat.ID] = true
	}

	return nil
}
