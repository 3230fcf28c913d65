// Package satellites holds the built-in table of commonly tracked satellites
// and resolves display names for arbitrary NORAD catalog numbers.
package satellites

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// UnknownName is used when neither the table nor the metadata service knows a satellite
const UnknownName = "Unknown"

// Satellite is a NORAD catalog entry
type Satellite struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Major lists the satellites tracked when no ids are given
var Major = []Satellite{
	{ID: 25544, Name: "ISS"},
	{ID: 33591, Name: "NOAA 19"},
	{ID: 28654, Name: "NOAA 18"},
	{ID: 25338, Name: "NOAA 15"},
	{ID: 38771, Name: "METOP-B"},
	{ID: 43689, Name: "METOP-C"},
	{ID: 27424, Name: "AQUA"},
	{ID: 25994, Name: "TERRA"},
	{ID: 37849, Name: "SUOMI NPP"},
	{ID: 27386, Name: "ENVISAT"},
	{ID: 39084, Name: "LANDSAT 8"},
}

// Table is an ordered, read-only id to name mapping
type Table struct {
	entries []Satellite
	byID    map[int]string
}

// NewTable builds a table from entries, keeping their order. Every entry
// needs a positive, unique id and a non-blank name.
func NewTable(entries []Satellite) (*Table, error) {
	t := &Table{
		entries: make([]Satellite, 0, len(entries)),
		byID:    make(map[int]string, len(entries)),
	}
	for _, s := range entries {
		if s.ID <= 0 {
			return nil, fmt.Errorf("invalid NORAD id %d", s.ID)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("NORAD id %d has no name", s.ID)
		}
		if _, dup := t.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate NORAD id %d", s.ID)
		}
		t.entries = append(t.entries, s)
		t.byID[s.ID] = s.Name
	}
	return t, nil
}

// Overlay returns a new table holding t's entries followed by entries. An
// entry whose id is already in t replaces that name in place.
func (t *Table) Overlay(entries []Satellite) (*Table, error) {
	extra, err := NewTable(entries)
	if err != nil {
		return nil, err
	}

	merged := make([]Satellite, 0, len(t.entries)+len(extra.entries))
	for _, s := range t.entries {
		if name, ok := extra.byID[s.ID]; ok {
			s.Name = name
		}
		merged = append(merged, s)
	}
	for _, s := range extra.entries {
		if _, ok := t.byID[s.ID]; !ok {
			merged = append(merged, s)
		}
	}
	return NewTable(merged)
}

// DefaultTable returns a table of the Major satellites
func DefaultTable() *Table {
	t, _ := NewTable(Major)
	return t
}

// Lookup returns the static name for id
func (t *Table) Lookup(id int) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// IDs returns the catalog numbers in table order
func (t *Table) IDs() []int {
	ids := make([]int, len(t.entries))
	for i, s := range t.entries {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// NameLookup fetches a satellite name from a remote metadata service
type NameLookup interface {
	Name(ctx context.Context, satelliteID int) (string, error)
}

// NameResolver answers from the static table first and falls back to a
// remote lookup. Results are memoized for the life of the resolver, so each
// unknown id costs at most one remote call. Safe for concurrent use; lookups
// of different ids run in parallel.
type NameResolver struct {
	table  *Table
	remote NameLookup
	logger *zap.SugaredLogger

	inflight singleflight.Group

	mu    sync.Mutex
	cache map[int]string
}

// NewNameResolver creates a resolver. remote may be nil.
func NewNameResolver(table *Table, remote NameLookup, logger *zap.SugaredLogger) *NameResolver {
	if table == nil {
		table = DefaultTable()
	}
	return &NameResolver{
		table:  table,
		remote: remote,
		logger: logger,
		cache:  make(map[int]string),
	}
}

// Resolve never fails; it returns UnknownName when no name can be found
func (r *NameResolver) Resolve(ctx context.Context, id int) string {
	if name, ok := r.table.Lookup(id); ok {
		return name
	}
	if name, ok := r.cached(id); ok {
		return name
	}

	v, _, _ := r.inflight.Do(strconv.Itoa(id), func() (interface{}, error) {
		// A lookup for id may have finished between the cache check and Do
		if name, ok := r.cached(id); ok {
			return name, nil
		}

		name := r.lookup(ctx, id)

		r.mu.Lock()
		r.cache[id] = name
		r.mu.Unlock()
		return name, nil
	})
	return v.(string)
}

func (r *NameResolver) cached(id int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.cache[id]
	return name, ok
}

func (r *NameResolver) lookup(ctx context.Context, id int) string {
	if r.remote == nil {
		return UnknownName
	}

	name, err := r.remote.Name(ctx, id)
	switch {
	case err != nil:
		r.logger.Warnw("satellite name lookup failed", "satellite", id, "error", err)
		return UnknownName
	case strings.TrimSpace(name) == "":
		r.logger.Debugw("satellite has no name in metadata", "satellite", id)
		return UnknownName
	}
	return name
}
