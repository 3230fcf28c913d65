package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/satpasses/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <satpasses.yaml> -sqlite <satpasses.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
	}

	fmt.Printf("Loading YAML configuration...\n")
	configData, err := config.NewYAMLProvider(*yamlFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML configuration: %v\n", err)
		os.Exit(1)
	}
	if err := validateWithDefaults(configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Loaded %d satellites\n", len(configData.Satellites))

	if *dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating SQLite database...\n")
	if err := convert(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s\n", *sqliteFile)
}

// validateWithDefaults checks the configuration as satpasses will see it.
// Empty settings are stored empty and defaulted at run time.
func validateWithDefaults(c *config.ConfigData) error {
	filled := *c
	filled.ApplyDefaults()
	return filled.Validate()
}

// convert creates the database, applies the schema and stores configData
func convert(dbPath string, configData *config.ConfigData) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// The provider runs the embedded migrations when it opens the database
	provider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer provider.Close()

	fmt.Printf("  Inserting settings...\n")
	fmt.Printf("  Inserting %d satellites...\n", len(configData.Satellites))

	if err := provider.SaveConfig(configData); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("  Configuration successfully inserted into database\n")
	return nil
}

func printConfigSummary(configData *config.ConfigData) {
	fmt.Println("\nConfiguration Summary:")

	fmt.Printf("N2YO:\n")
	if configData.N2YO.APIKey != "" {
		fmt.Printf("  - API key: (set)\n")
	} else {
		fmt.Printf("  - API key: (from %s)\n", config.APIKeyEnv)
	}
	if configData.N2YO.APIEndpoint != "" {
		fmt.Printf("  - Endpoint: %s\n", configData.N2YO.APIEndpoint)
	}

	if configData.Geocoder.APIEndpoint != "" {
		fmt.Printf("\nGeocoder: %s\n", configData.Geocoder.APIEndpoint)
	}

	d := configData.Defaults
	fmt.Printf("\nDefaults: days=%d min-elevation=%v timeout=%q workers=%d format=%q\n",
		d.Days, d.MinElevation, d.Timeout, d.Workers, d.Format)

	fmt.Printf("\nSatellites (%d):\n", len(configData.Satellites))
	for _, sat := range configData.Satellites {
		fmt.Printf("  - %s (%d)\n", sat.Name, sat.ID)
	}
}
