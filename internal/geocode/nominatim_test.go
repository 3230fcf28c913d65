package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return NewClient(Config{APIEndpoint: url, UserAgent: "test-agent"}, zap.NewNop().Sugar())
}

func TestSearchSendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"48.8534951","lon":"2.3483915","display_name":"Paris, France"}]`))
	}))
	defer server.Close()

	matches, err := newTestClient(server.URL + "/").Search(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, Match{Lat: "48.8534951", Lon: "2.3483915", DisplayName: "Paris, France"}, matches[0])
}

func TestSearchNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	matches, err := newTestClient(server.URL).Search(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "Paris")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}
