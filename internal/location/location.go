// Package location turns a user-supplied location string into observer
// coordinates.
package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chrissnell/satpasses/internal/geocode"
	"go.uber.org/zap"
)

// ErrNotFound is matched by every NotFoundError
var ErrNotFound = errors.New("location not found")

// NotFoundError reports a location string that could be neither parsed as
// coordinates nor geocoded
type NotFoundError struct {
	Input string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location %q was not found", e.Input)
}

// Is lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Location is an observer position in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite and in range
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

func (l Location) String() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

// ParseCoordinates parses a literal "<lat>,<lon>" pair. It reports false for
// anything else, including pairs that parse but fall outside valid ranges.
func ParseCoordinates(input string) (Location, bool) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return Location{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, false
	}

	loc := Location{Latitude: lat, Longitude: lon}
	// NaN fails every comparison in Valid, so it is rejected here too.
	if !loc.Valid() {
		return Location{}, false
	}
	return loc, true
}

// Geocoder searches for a place name
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Match, error)
}

// Resolver resolves location strings, preferring literal coordinates
type Resolver struct {
	geocoder Geocoder
	logger   *zap.SugaredLogger
}

// NewResolver creates a resolver that falls back to geocoder for place names
func NewResolver(geocoder Geocoder, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve returns the coordinates for input. Literal coordinates never touch
// the network. A pair that parses but is out of range, NaN or infinite is not
// a coordinate literal and is geocoded like a place name. Anything else is
// geocoded exactly once; a refused search or an
// empty result yields a *NotFoundError. Only a failure to reach the geocoder
// at all is returned as a different error.
func (r *Resolver) Resolve(ctx context.Context, input string) (Location, error) {
	if loc, ok := ParseCoordinates(input); ok {
		r.logger.Debugf("using literal coordinates %v", loc)
		return loc, nil
	}

	matches, err := r.geocoder.Search(ctx, input)
	if err != nil {
		if errors.Is(err, geocode.ErrUnexpectedStatus) {
			r.logger.Warnf("geocoding %q failed: %v", input, err)
			return Location{}, &NotFoundError{Input: input}
		}
		return Location{}, fmt.Errorf("error geocoding %q: %w", input, err)
	}

	if len(matches) == 0 {
		return Location{}, &NotFoundError{Input: input}
	}

	best := matches[0]
	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil {
		r.logger.Warnf("geocoder returned unparseable coordinates for %q: lat=%q lon=%q", input, best.Lat, best.Lon)
		return Location{}, &NotFoundError{Input: input}
	}

	loc := Location{Latitude: lat, Longitude: lon}
	r.logger.Debugf("geocoded %q to %v (%s)", input, loc, best.DisplayName)
	return loc, nil
}
