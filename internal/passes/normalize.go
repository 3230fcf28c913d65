package passes

import (
	"encoding/json"
	"fmt"
	"time"
)

// DisplayLayout renders pass instants like "14:03:27 UTC Oct/19/2026"
const DisplayLayout = "15:04:05 UTC Jan/02/2006"

// FormatTime renders epoch seconds in UTC using DisplayLayout
func FormatTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(DisplayLayout)
}

// Duration is a pass length split into whole minutes and remainder seconds
type Duration struct {
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// NewDuration measures end-start. A provider reporting an end before the
// start yields a zero duration.
func NewDuration(start, end int64) Duration {
	d := end - start
	if d < 0 {
		d = 0
	}
	return Duration{Minutes: d / 60, Seconds: d % 60}
}

// TotalSeconds returns the duration as seconds
func (d Duration) TotalSeconds() int64 {
	return d.Minutes*60 + d.Seconds
}

func (d Duration) String() string {
	return fmt.Sprintf("%dm %ds", d.Minutes, d.Seconds)
}

// reservedFields are always produced by ReportPass itself
var reservedFields = map[string]bool{
	"satid":    true,
	"sat_info": true,
	FieldStart: true,
	FieldMax:   true,
	FieldEnd:   true,
	"duration": true,
}

// ReportPass is a sorted pass with its presentation fields. The raw epochs
// stay on the embedded Pass.
type ReportPass struct {
	Pass

	Duration Duration
	Start    string
	Max      string
	End      string

	// Annotations added after aggregation, e.g. sky conditions
	Annotations map[string]any
}

func newReportPass(p Pass) ReportPass {
	return ReportPass{
		Pass:     p,
		Duration: NewDuration(p.StartUTC, p.EndUTC),
		Start:    FormatTime(p.StartUTC),
		Max:      FormatTime(p.MaxUTC),
		End:      FormatTime(p.EndUTC),
	}
}

// Annotate attaches an extra output field. Provider fields cannot be replaced.
func (rp *ReportPass) Annotate(key string, value any) {
	if rp.Annotations == nil {
		rp.Annotations = make(map[string]any)
	}
	rp.Annotations[key] = value
}

// Fields returns the pass as a flat map using the provider's field names, with
// the instants replaced by display strings. Extra fields are decoded to plain
// Go values so non-JSON encoders can use the map.
func (rp ReportPass) Fields() map[string]any {
	out := make(map[string]any, len(rp.Extra)+len(rp.Annotations)+6)
	for k, raw := range rp.Extra {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			v = string(raw)
		}
		out[k] = v
	}
	for k, v := range rp.Annotations {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	out["satid"] = rp.SatelliteID
	out["sat_info"] = rp.SatelliteLabel
	out[FieldStart] = rp.Start
	out[FieldMax] = rp.Max
	out[FieldEnd] = rp.End
	out["duration"] = rp.Duration.String()
	return out
}

// MarshalJSON writes Fields, keeping provider extras byte-for-byte
func (rp ReportPass) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(rp.Extra)+len(rp.Annotations)+6)
	for k, v := range rp.Fields() {
		out[k] = v
	}
	for k, raw := range rp.Extra {
		if !reservedFields[k] {
			out[k] = raw
		}
	}
	return json.Marshal(out)
}
