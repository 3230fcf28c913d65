package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/sky"
)

func main() {
	var (
		timeStr string
		lat     float64
		lon     float64
	)
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate conditions for (RFC3339 format, e.g., 2025-10-19T21:30:00Z)")
	flag.Float64Var(&lat, "lat", 0, "Observer latitude in degrees")
	flag.Float64Var(&lon, "lon", 0, "Observer longitude in degrees, east positive")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	loc := location.Location{Latitude: lat, Longitude: lon}
	if !loc.Valid() {
		fmt.Fprintf(os.Stderr, "Error: coordinates out of range: %s\n", loc)
		os.Exit(1)
	}

	sun := sky.Sun(t, lat, lon)
	moon := sky.Moon(t)

	fmt.Printf("Sky conditions at %s for %s\n", t.Format(time.RFC3339), loc)
	fmt.Printf("  Sun elevation:  %.1f°\n", sun.ElevationDeg)
	fmt.Printf("  Sun azimuth:    %.1f°\n", sun.AzimuthDeg)
	fmt.Printf("  Lighting:       %s\n", sky.ClassifyLighting(sun.ElevationDeg))
	fmt.Printf("  Moon phase:     %s\n", moon.Name)
	fmt.Printf("  Illumination:   %.1f%%\n", moon.Illumination*100)
	fmt.Printf("  Moon age:       %.1f days\n", moon.AgeDays)
}
