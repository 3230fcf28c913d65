package config

import (
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"github.com/chrissnell/satpasses/pkg/migrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Setting keys stored in the settings table
const (
	keyN2YOAPIKey        = "n2yo.api_key"
	keyN2YOEndpoint      = "n2yo.api_endpoint"
	keyGeocoderEndpoint  = "geocoder.api_endpoint"
	keyGeocoderUserAgent = "geocoder.user_agent"
	keyDays              = "defaults.days"
	keyMinElevation      = "defaults.min_elevation"
	keyTimeout           = "defaults.timeout"
	keyWorkers           = "defaults.workers"
	keyFormat            = "defaults.format"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens (or creates) a SQLite configuration database and
// brings its schema up to date
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := newMigrator(db).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	settings, err := s.getSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	config := &ConfigData{
		N2YO: N2YOData{
			APIKey:      settings[keyN2YOAPIKey],
			APIEndpoint: settings[keyN2YOEndpoint],
		},
		Geocoder: GeocoderData{
			APIEndpoint: settings[keyGeocoderEndpoint],
			UserAgent:   settings[keyGeocoderUserAgent],
		},
		Defaults: DefaultsData{
			Timeout: settings[keyTimeout],
			Format:  settings[keyFormat],
		},
	}

	if config.Defaults.Days, err = atoiSetting(settings, keyDays); err != nil {
		return nil, err
	}
	if config.Defaults.Workers, err = atoiSetting(settings, keyWorkers); err != nil {
		return nil, err
	}
	if v, ok := settings[keyMinElevation]; ok && v != "" {
		config.Defaults.MinElevation, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s setting %q: %w", keyMinElevation, v, err)
		}
	}

	satellites, err := s.GetSatellites()
	if err != nil {
		return nil, fmt.Errorf("failed to load satellites: %w", err)
	}
	config.Satellites = satellites

	return config, nil
}

// GetSatellites returns the satellite table in its configured order
func (s *SQLiteProvider) GetSatellites() ([]SatelliteData, error) {
	rows, err := s.db.Query(`SELECT norad_id, name FROM satellites ORDER BY position, norad_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query satellites: %w", err)
	}
	defer rows.Close()

	var satellites []SatelliteData
	for rows.Next() {
		var sat SatelliteData
		if err := rows.Scan(&sat.ID, &sat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan satellite: %w", err)
		}
		satellites = append(satellites, sat)
	}

	return satellites, rows.Err()
}

// IsReadOnly returns false for SQLite provider
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// SchemaVersion returns the highest schema migration applied to the database
func (s *SQLiteProvider) SchemaVersion() (int, error) {
	return newMigrator(s.db).GetCurrentVersion()
}

func newMigrator(db *sql.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, migrate.NewFSProvider(migrationsFS, "migrations", "schema_migrations"))
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{"DELETE FROM settings", "DELETE FROM satellites"} {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to clear existing config: %w", err)
		}
	}

	settings := map[string]string{
		keyN2YOAPIKey:        configData.N2YO.APIKey,
		keyN2YOEndpoint:      configData.N2YO.APIEndpoint,
		keyGeocoderEndpoint:  configData.Geocoder.APIEndpoint,
		keyGeocoderUserAgent: configData.Geocoder.UserAgent,
		keyTimeout:           configData.Defaults.Timeout,
		keyFormat:            configData.Defaults.Format,
	}
	if configData.Defaults.Days != 0 {
		settings[keyDays] = strconv.Itoa(configData.Defaults.Days)
	}
	if configData.Defaults.Workers != 0 {
		settings[keyWorkers] = strconv.Itoa(configData.Defaults.Workers)
	}
	if configData.Defaults.MinElevation != 0 {
		settings[keyMinElevation] = strconv.FormatFloat(configData.Defaults.MinElevation, 'f', -1, 64)
	}

	for key, value := range settings {
		if value == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", key, err)
		}
	}

	for i, sat := range configData.Satellites {
		if _, err := tx.Exec(`INSERT INTO satellites (norad_id, name, position) VALUES (?, ?, ?)`, sat.ID, sat.Name, i); err != nil {
			return fmt.Errorf("failed to insert satellite %d: %w", sat.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteProvider) getSettings() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

func atoiSetting(settings map[string]string, key string) (int, error) {
	v, ok := settings[key]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s setting %q: %w", key, v, err)
	}
	return n, nil
}
