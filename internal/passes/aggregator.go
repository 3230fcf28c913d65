package passes

import (
	"context"
	"fmt"
	"sort"

	"github.com/chrissnell/satpasses/internal/location"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PassProvider predicts the passes of one satellite over an observer
type PassProvider interface {
	Passes(ctx context.Context, loc location.Location, satelliteID, days int, minElevation float64) ([]Pass, error)
}

// NameResolver maps a satellite ID to a display name. It never fails; an
// unresolvable ID gets a placeholder name.
type NameResolver interface {
	Resolve(ctx context.Context, satelliteID int) string
}

// Query describes one aggregation run
type Query struct {
	Location     location.Location
	SatelliteIDs []int
	Days         int
	MinElevation float64
}

// SatelliteResult records what happened for one tracked ID
type SatelliteResult struct {
	SatelliteID int
	Name        string
	Label       string
	PassCount   int
	Err         error

	passes []Pass
}

// OK reports whether the provider answered successfully
func (r SatelliteResult) OK() bool {
	return r.Err == nil
}

// Report is the merged, ordered outcome of a run
type Report struct {
	Passes     []ReportPass
	Count      int
	Satellites []string
	Results    []SatelliteResult
}

// Failed returns the results whose provider call failed
func (r Report) Failed() []SatelliteResult {
	var failed []SatelliteResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Aggregator queries every tracked satellite and merges the results
type Aggregator struct {
	provider PassProvider
	names    NameResolver
	workers  int
	logger   *zap.SugaredLogger
}

// NewAggregator creates an aggregator. With workers <= 1 satellites are
// queried one after another in tracked order; more workers fetch
// concurrently without changing the result.
func NewAggregator(provider PassProvider, names NameResolver, workers int, logger *zap.SugaredLogger) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		provider: provider,
		names:    names,
		workers:  workers,
		logger:   logger,
	}
}

// Aggregate runs q. Per-satellite failures only shrink the report; Aggregate
// itself cannot fail.
func (a *Aggregator) Aggregate(ctx context.Context, q Query) Report {
	results := make([]SatelliteResult, len(q.SatelliteIDs))

	if a.workers == 1 {
		for i, id := range q.SatelliteIDs {
			results[i] = a.fetchSatellite(ctx, q, id)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(a.workers)
		for i, id := range q.SatelliteIDs {
			g.Go(func() error {
				// Each goroutine owns slot i, so the merge below sees the
				// same order as a sequential run.
				results[i] = a.fetchSatellite(ctx, q, id)
				return nil
			})
		}
		g.Wait()
	}

	return merge(results)
}

// fetchSatellite queries the provider and the name resolver for one ID
func (a *Aggregator) fetchSatellite(ctx context.Context, q Query, id int) SatelliteResult {
	fetched, err := a.provider.Passes(ctx, q.Location, id, q.Days, q.MinElevation)
	if err != nil {
		a.logger.Warnw("pass lookup failed, satellite skipped", "satellite", id, "error", err)
		fetched = nil
	}

	name := a.names.Resolve(ctx, id)
	label := fmt.Sprintf("%s (%d)", name, id)

	for i := range fetched {
		fetched[i].SatelliteID = id
		fetched[i].SatelliteLabel = label
	}

	a.logger.Debugf("satellite %s: %d passes", label, len(fetched))

	return SatelliteResult{
		SatelliteID: id,
		Name:        name,
		Label:       label,
		PassCount:   len(fetched),
		Err:         err,
		passes:      fetched,
	}
}

// merge concatenates results in tracked order, stable-sorts by start time
// and only then derives the display fields
func merge(results []SatelliteResult) Report {
	var all []Pass
	for i := range results {
		all = append(all, results[i].passes...)
		results[i].passes = nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartUTC < all[j].StartUTC
	})

	report := Report{
		Passes:  make([]ReportPass, len(all)),
		Count:   len(all),
		Results: results,
	}

	seen := make(map[string]bool)
	for i, p := range all {
		report.Passes[i] = newReportPass(p)
		if !seen[p.SatelliteLabel] {
			seen[p.SatelliteLabel] = true
			report.Satellites = append(report.Satellites, p.SatelliteLabel)
		}
	}

	return report
}
