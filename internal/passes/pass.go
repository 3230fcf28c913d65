// Package passes merges per-satellite pass predictions into one ordered,
// display-ready report.
package passes

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Provider field names for the three pass instants
const (
	FieldStart = "startUTC"
	FieldMax   = "maxUTC"
	FieldEnd   = "endUTC"
)

// Pass is one predicted visibility window. SatelliteID and SatelliteLabel are
// filled in by the Aggregator; the provider only supplies the instants and
// whatever extra fields it carries.
type Pass struct {
	SatelliteID    int
	SatelliteLabel string

	// Epoch seconds, UTC
	StartUTC int64
	MaxUTC   int64
	EndUTC   int64

	// Every other provider field, kept verbatim
	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a provider pass record, keeping unknown fields in Extra
func (p *Pass) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var err error
	if p.StartUTC, err = epochField(fields, FieldStart); err != nil {
		return err
	}
	if p.MaxUTC, err = epochField(fields, FieldMax); err != nil {
		return err
	}
	if p.EndUTC, err = epochField(fields, FieldEnd); err != nil {
		return err
	}

	delete(fields, FieldStart)
	delete(fields, FieldMax)
	delete(fields, FieldEnd)
	if len(fields) > 0 {
		p.Extra = fields
	} else {
		p.Extra = nil
	}

	return nil
}

// Float reads a numeric extra field such as "maxEl"
func (p Pass) Float(key string) (float64, bool) {
	raw, ok := p.Extra[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// epochField decodes an integer (or integral float) epoch. A missing field
// decodes as zero.
func epochField(fields map[string]json.RawMessage, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return int64(f), nil
}
