package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/satpasses/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite configuration file")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <satpasses.yaml> -sqlite <satpasses.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Println("Configuration Comparison Test")
	fmt.Println("===========================")

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	yamlConfig, err := config.NewYAMLProvider(*yamlFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loading SQLite configuration: %s\n", *sqliteFile)
	sqliteProvider, err := config.NewSQLiteProvider(*sqliteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite provider: %v\n", err)
		os.Exit(1)
	}
	defer sqliteProvider.Close()

	version, err := sqliteProvider.SchemaVersion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading SQLite schema version: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Schema version: %d\n", version)

	sqliteConfig, err := sqliteProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading SQLite config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nComparison Results:")
	fmt.Println("==================")

	diffs := compare(yamlConfig, sqliteConfig)
	for _, d := range diffs {
		fmt.Printf("✗ %s\n", d)
	}
	if len(diffs) == 0 {
		fmt.Printf("✓ Settings match\n")
		fmt.Printf("✓ %d satellites match\n", len(yamlConfig.Satellites))
	}

	fmt.Println("\nTest completed!")
	if len(diffs) > 0 {
		os.Exit(1)
	}
}

// compare lists every difference between two configurations
func compare(yaml, sqlite *config.ConfigData) []string {
	var diffs []string
	field := func(name string, a, b any) {
		if a != b {
			diffs = append(diffs, fmt.Sprintf("%s: YAML='%v', SQLite='%v'", name, a, b))
		}
	}

	if yaml.N2YO.APIKey != sqlite.N2YO.APIKey {
		diffs = append(diffs, "n2yo api key differs")
	}
	field("n2yo endpoint", yaml.N2YO.APIEndpoint, sqlite.N2YO.APIEndpoint)
	field("geocoder endpoint", yaml.Geocoder.APIEndpoint, sqlite.Geocoder.APIEndpoint)
	field("geocoder user agent", yaml.Geocoder.UserAgent, sqlite.Geocoder.UserAgent)
	field("days", yaml.Defaults.Days, sqlite.Defaults.Days)
	field("min elevation", yaml.Defaults.MinElevation, sqlite.Defaults.MinElevation)
	field("timeout", yaml.Defaults.Timeout, sqlite.Defaults.Timeout)
	field("workers", yaml.Defaults.Workers, sqlite.Defaults.Workers)
	field("format", yaml.Defaults.Format, sqlite.Defaults.Format)

	if len(yaml.Satellites) != len(sqlite.Satellites) {
		diffs = append(diffs, fmt.Sprintf("satellite count: YAML=%d, SQLite=%d", len(yaml.Satellites), len(sqlite.Satellites)))
		return diffs
	}
	for i := range yaml.Satellites {
		if yaml.Satellites[i] != sqlite.Satellites[i] {
			diffs = append(diffs, fmt.Sprintf("satellite #%d: YAML=%s (%d), SQLite=%s (%d)", i+1,
				yaml.Satellites[i].Name, yaml.Satellites[i].ID,
				sqlite.Satellites[i].Name, sqlite.Satellites[i].ID))
		}
	}
	return diffs
}
