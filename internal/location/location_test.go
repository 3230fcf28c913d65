package location

import (
	"context"
	"errors"
	"testing"

	"github.com/chrissnell/satpasses/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGeocoder struct {
	matches []geocode.Match
	err     error
	queries []string
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) ([]geocode.Match, error) {
	f.queries = append(f.queries, query)
	return f.matches, f.err
}

func newResolver(g *fakeGeocoder) *Resolver {
	return NewResolver(g, zap.NewNop().Sugar())
}

func TestResolveLiteralCoordinates(t *testing.T) {
	tests := []struct {
		input string
		want  Location
	}{
		{"48.8566,2.3522", Location{48.8566, 2.3522}},
		{"48.8566, 2.3522", Location{48.8566, 2.3522}},
		{"-33.8688,151.2093", Location{-33.8688, 151.2093}},
		{"0,0", Location{0, 0}},
		{"90,-180", Location{90, -180}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g := &fakeGeocoder{}
			loc, err := newResolver(g).Resolve(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)
			assert.Empty(t, g.queries, "literal coordinates must not be geocoded")
		})
	}
}

func TestResolveMalformedLiteralFallsThrough(t *testing.T) {
	inputs := []string{"48.8566,abc", "1,2,3", "91,0", "0,181", "NaN,0", "Inf,0", "Paris, France"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			g := &fakeGeocoder{matches: []geocode.Match{{Lat: "10.5", Lon: "-20.25"}}}
			loc, err := newResolver(g).Resolve(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, Location{10.5, -20.25}, loc)
			assert.Equal(t, []string{input}, g.queries)
		})
	}
}

func TestResolvePlaceName(t *testing.T) {
	g := &fakeGeocoder{matches: []geocode.Match{
		{Lat: "48.8534951", Lon: "2.3483915"},
		{Lat: "33.6617962", Lon: "-95.555513"},
	}}

	loc, err := newResolver(g).Resolve(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, Location{48.8534951, 2.3483915}, loc)
	assert.Len(t, g.queries, 1)
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name string
		g    *fakeGeocoder
	}{
		{"no candidates", &fakeGeocoder{}},
		{"bad status", &fakeGeocoder{err: geocode.ErrUnexpectedStatus}},
		{"unparseable coordinates", &fakeGeocoder{matches: []geocode.Match{{Lat: "north", Lon: "2"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newResolver(tt.g).Resolve(context.Background(), "Paris")
			require.ErrorIs(t, err, ErrNotFound)

			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, "Paris", nf.Input)
			assert.Len(t, tt.g.queries, 1)
		})
	}
}

func TestResolveTransportError(t *testing.T) {
	g := &fakeGeocoder{err: errors.New("connection refused")}

	_, err := newResolver(g).Resolve(context.Background(), "Paris")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "48.8566, 2.3522", Location{48.8566, 2.3522}.String())
	assert.Equal(t, "-1, 0", Location{-1, 0}.String())
}
