// Package report renders an aggregated pass report for the terminal or for
// other programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/passes"
	"github.com/vmihailenco/msgpack/v5"
)

// Banner heads the text report
const Banner = "Satellite Tracker v1.0"

// Format selects the output encoding
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgPack Format = "msgpack"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatMsgPack:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Header describes the run the report answers
type Header struct {
	Input        string
	Location     location.Location
	Days         int
	MinElevation float64
}

// Failure is a satellite whose pass query failed
type Failure struct {
	SatelliteID int    `json:"satid"`
	Label       string `json:"sat_info"`
	Error       string `json:"error"`
}

// Document is the machine-readable report
type Document struct {
	Location     DocumentLocation `json:"location"`
	Days         int              `json:"days"`
	MinElevation float64          `json:"minElevation"`
	Satellites   []string         `json:"satellites"`
	Count        int              `json:"count"`
	Passes       any              `json:"passes"`
	Summary      Summary          `json:"summary"`
	Failures     []Failure        `json:"failures,omitempty"`
}

// DocumentLocation pairs the user's input with its coordinates
type DocumentLocation struct {
	Input     string  `json:"input"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Renderer writes reports in one format
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer for format
func NewRenderer(format Format) *Renderer {
	if format == "" {
		format = FormatText
	}
	return &Renderer{format: format}
}

// Render writes the report to w
func (r *Renderer) Render(w io.Writer, h Header, rep passes.Report) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(w, h, rep)
	case FormatMsgPack:
		return r.writeMsgPack(w, h, rep)
	default:
		return r.writeText(w, h, rep)
	}
}

func (r *Renderer) writeText(w io.Writer, h Header, rep passes.Report) error {
	rule := strings.Repeat("=", 40)

	var b strings.Builder
	fmt.Fprintln(&b, Banner)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Location: %s (%s)\n", h.Input, h.Location)
	fmt.Fprintf(&b, "Looking ahead: %d days\n", h.Days)
	fmt.Fprintf(&b, "Minimum elevation: %s°\n", formatDegrees(h.MinElevation))
	fmt.Fprintf(&b, "Satellites tracked: %s\n", strings.Join(rep.Satellites, ", "))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Found %d passes:\n\n", rep.Count)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(passList(rep)); err != nil {
		return fmt.Errorf("error encoding passes: %w", err)
	}

	if rep.Count == 0 {
		return nil
	}

	s := Summarize(rep)
	line := fmt.Sprintf("\nSummary: mean duration %s, longest %s", s.meanDuration(), s.LongestDuration)
	if s.HighestElevation != nil {
		line += fmt.Sprintf(", highest elevation %s°", formatDegrees(*s.HighestElevation))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func (r *Renderer) writeJSON(w io.Writer, h Header, rep passes.Report) error {
	doc := newDocument(h, rep)
	doc.Passes = passList(rep)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func (r *Renderer) writeMsgPack(w io.Writer, h Header, rep passes.Report) error {
	doc := newDocument(h, rep)
	fields := make([]map[string]any, len(rep.Passes))
	for i, p := range rep.Passes {
		fields[i] = p.Fields()
	}
	doc.Passes = fields

	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json")
	encoder.SetSortMapKeys(true)
	return encoder.Encode(doc)
}

func newDocument(h Header, rep passes.Report) Document {
	doc := Document{
		Location: DocumentLocation{
			Input:     h.Input,
			Latitude:  h.Location.Latitude,
			Longitude: h.Location.Longitude,
		},
		Days:         h.Days,
		MinElevation: h.MinElevation,
		Satellites:   rep.Satellites,
		Count:        rep.Count,
		Summary:      Summarize(rep),
	}
	if doc.Satellites == nil {
		doc.Satellites = []string{}
	}

	for _, res := range rep.Failed() {
		doc.Failures = append(doc.Failures, Failure{
			SatelliteID: res.SatelliteID,
			Label:       res.Label,
			Error:       res.Err.Error(),
		})
	}
	return doc
}

// passList never returns nil so an empty report encodes as []
func passList(rep passes.Report) []passes.ReportPass {
	if rep.Passes == nil {
		return []passes.ReportPass{}
	}
	return rep.Passes
}

// formatDegrees prints whole values with one decimal, e.g. 30.0
func formatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
