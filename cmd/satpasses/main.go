package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/chrissnell/satpasses/internal/geocode"
	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/log"
	"github.com/chrissnell/satpasses/internal/n2yo"
	"github.com/chrissnell/satpasses/internal/passes"
	"github.com/chrissnell/satpasses/internal/report"
	"github.com/chrissnell/satpasses/internal/satellites"
	"github.com/chrissnell/satpasses/internal/sky"
	"github.com/chrissnell/satpasses/pkg/config"
	"github.com/google/uuid"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// options holds the command line after parsing
type options struct {
	location     string
	days         int
	minElevation float64
	satelliteIDs string
	workers      int
	format       string
	sky          bool

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	var opts options

	cfgFile := flag.String("config", "", "Path to configuration source (optional):\n\t\t\t  YAML: satpasses.yaml\n\t\t\t  SQLite: satpasses.db\n\t\t\t  Use 'satpasses-config-convert' to convert YAML→SQLite")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	flag.StringVar(&opts.location, "location", "", "City name or coordinates as 'lat,lon' (required)")
	flag.StringVar(&opts.location, "l", "", "Shorthand for -location")
	flag.IntVar(&opts.days, "days", config.DefaultDays, "Days to look ahead")
	flag.IntVar(&opts.days, "d", config.DefaultDays, "Shorthand for -days")
	flag.Float64Var(&opts.minElevation, "min-elevation", config.DefaultMinElevation, "Minimum elevation in degrees")
	flag.Float64Var(&opts.minElevation, "e", config.DefaultMinElevation, "Shorthand for -min-elevation")
	flag.StringVar(&opts.satelliteIDs, "satellite-ids", "", "NORAD ids to track, comma or space separated (default: configured table)")
	flag.StringVar(&opts.satelliteIDs, "s", "", "Shorthand for -satellite-ids")
	flag.IntVar(&opts.workers, "workers", config.DefaultWorkers, "Satellites queried concurrently")
	flag.StringVar(&opts.format, "format", config.DefaultFormat, "Output format: text, json or msgpack")
	flag.BoolVar(&opts.sky, "sky", false, "Annotate passes with Sun elevation, twilight and Moon illumination")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("satpasses %s\n", version)
		os.Exit(0)
	}

	if opts.location == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -location <city or lat,lon> [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[canonicalFlag(f.Name)] = true
	})

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	cfgData.ApplyEnv(os.Getenv)
	cfgData.ApplyDefaults()
	opts.apply(cfgData)

	if err := cfgData.Validate(); err != nil {
		log.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfgData, opts); err != nil {
		var nf *location.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "Error: Location '%s' was not found\n", nf.Input)
		} else {
			log.Errorf("satpasses: %v", err)
		}
		stop()
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgData *config.ConfigData, opts options) error {
	logger := log.With("run_id", uuid.New().String())

	if cfgData.N2YO.APIKey == "" {
		logger.Warnf("no N2YO API key configured; set %s or n2yo.api-key", config.APIKeyEnv)
	}

	timeout, err := cfgData.TimeoutDuration()
	if err != nil {
		return err
	}

	tracked, names, err := satelliteTables(cfgData)
	if err != nil {
		return err
	}

	ids, err := parseSatelliteIDs(opts.satelliteIDs)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		ids = tracked.IDs()
	}

	format, err := report.ParseFormat(cfgData.Defaults.Format)
	if err != nil {
		return err
	}

	geocoder := geocode.NewClient(geocode.Config{
		APIEndpoint: cfgData.Geocoder.APIEndpoint,
		UserAgent:   cfgData.Geocoder.UserAgent,
		Timeout:     timeout,
	}, logger)

	loc, err := location.NewResolver(geocoder, logger).Resolve(ctx, opts.location)
	if err != nil {
		return err
	}
	logger.Debugw("observer resolved", "input", opts.location, "location", loc.String())

	client := n2yo.NewClient(n2yo.Config{
		APIKey:      cfgData.N2YO.APIKey,
		APIEndpoint: cfgData.N2YO.APIEndpoint,
		Timeout:     timeout,
	}, logger)

	resolver := satellites.NewNameResolver(names, client, logger)
	aggregator := passes.NewAggregator(client, resolver, cfgData.Defaults.Workers, logger)

	rep := aggregator.Aggregate(ctx, passes.Query{
		Location:     loc,
		SatelliteIDs: ids,
		Days:         cfgData.Defaults.Days,
		MinElevation: cfgData.Defaults.MinElevation,
	})
	if failed := rep.Failed(); len(failed) > 0 {
		logger.Warnf("%d of %d satellites returned no data", len(failed), len(ids))
	}

	if opts.sky {
		sky.Annotate(&rep, loc)
	}

	out := bufio.NewWriter(os.Stdout)
	header := report.Header{
		Input:        opts.location,
		Location:     loc,
		Days:         cfgData.Defaults.Days,
		MinElevation: cfgData.Defaults.MinElevation,
	}
	if err := report.NewRenderer(format).Render(out, header, rep); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return out.Flush()
}

func loadConfig(cfgFile, cfgBackend string) (*config.ConfigData, error) {
	if cfgFile == "" {
		return &config.ConfigData{}, nil
	}

	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}

// apply overrides configuration with the flags given on the command line
func (o options) apply(c *config.ConfigData) {
	if o.set["days"] {
		c.Defaults.Days = o.days
	}
	if o.set["min-elevation"] {
		c.Defaults.MinElevation = o.minElevation
	}
	if o.set["workers"] {
		c.Defaults.Workers = o.workers
	}
	if o.set["format"] {
		c.Defaults.Format = o.format
	}
}

func canonicalFlag(name string) string {
	switch name {
	case "l":
		return "location"
	case "d":
		return "days"
	case "e":
		return "min-elevation"
	case "s":
		return "satellite-ids"
	}
	return name
}

// satelliteTables returns the table whose ids are tracked by default and the
// table used for naming. The configured satellites replace the built-in list
// for tracking but only add to it for naming, so built-in ids never need a
// metadata lookup.
func satelliteTables(c *config.ConfigData) (tracked, names *satellites.Table, err error) {
	if len(c.Satellites) == 0 {
		return satellites.DefaultTable(), satellites.DefaultTable(), nil
	}

	entries := make([]satellites.Satellite, len(c.Satellites))
	for i, s := range c.Satellites {
		entries[i] = satellites.Satellite{ID: s.ID, Name: s.Name}
	}

	if tracked, err = satellites.NewTable(entries); err != nil {
		return nil, nil, err
	}
	if names, err = satellites.DefaultTable().Overlay(entries); err != nil {
		return nil, nil, err
	}
	return tracked, names, nil
}

// parseSatelliteIDs accepts "25544,33591" as well as "25544 33591"
func parseSatelliteIDs(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid satellite id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
