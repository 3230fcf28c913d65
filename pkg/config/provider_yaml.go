package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		N2YO: N2YOData{
			APIKey:      yamlConfig.N2YO.APIKey,
			APIEndpoint: yamlConfig.N2YO.APIEndpoint,
		},
		Geocoder: GeocoderData{
			APIEndpoint: yamlConfig.Geocoder.APIEndpoint,
			UserAgent:   yamlConfig.Geocoder.UserAgent,
		},
		Defaults: DefaultsData{
			Days:         yamlConfig.Defaults.Days,
			MinElevation: yamlConfig.Defaults.MinElevation,
			Timeout:      yamlConfig.Defaults.Timeout,
			Workers:      yamlConfig.Defaults.Workers,
			Format:       yamlConfig.Defaults.Format,
		},
		Satellites: make([]SatelliteData, len(yamlConfig.Satellites)),
	}

	for i, sat := range yamlConfig.Satellites {
		config.Satellites[i] = SatelliteData{ID: sat.ID, Name: sat.Name}
	}

	y.config = config
	return config, nil
}

// GetSatellites returns the satellite table from the YAML file
func (y *YAMLProvider) GetSatellites() ([]SatelliteData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return y.config.Satellites, nil
}

// IsReadOnly returns true for YAML provider
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with kebab-case keys
type ConfigYAML struct {
	N2YO       N2YOYAML        `yaml:"n2yo"`
	Geocoder   GeocoderYAML    `yaml:"geocoder,omitempty"`
	Defaults   DefaultsYAML    `yaml:"defaults,omitempty"`
	Satellites []SatelliteYAML `yaml:"satellites,omitempty"`
}

type N2YOYAML struct {
	APIKey      string `yaml:"api-key,omitempty"`
	APIEndpoint string `yaml:"api-endpoint,omitempty"`
}

type GeocoderYAML struct {
	APIEndpoint string `yaml:"api-endpoint,omitempty"`
	UserAgent   string `yaml:"user-agent,omitempty"`
}

type DefaultsYAML struct {
	Days         int     `yaml:"days,omitempty"`
	MinElevation float64 `yaml:"min-elevation,omitempty"`
	Timeout      string  `yaml:"timeout,omitempty"`
	Workers      int     `yaml:"workers,omitempty"`
	Format       string  `yaml:"format,omitempty"`
}

type SatelliteYAML struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}
