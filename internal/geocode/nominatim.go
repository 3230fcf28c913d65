// Package geocode resolves place names to coordinates using a
// Nominatim-compatible text search service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultEndpoint  = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "SatelliteTracker/1.0"
	maxBodyBytes     = 1 << 20
)

// ErrUnexpectedStatus is wrapped when the search service answers with a
// non-200 status
var ErrUnexpectedStatus = errors.New("unexpected status from geocoding service")

// Match is one search candidate. Coordinates are decimal strings exactly as
// the service returned them.
type Match struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Config holds the search service settings
type Config struct {
	APIEndpoint string
	UserAgent   string
	Timeout     time.Duration
}

// Client performs place-name searches
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a search client. Empty settings fall back to the public
// Nominatim instance.
func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = defaultEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		endpoint:  strings.TrimRight(cfg.APIEndpoint, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Search asks for the single best match for query. An empty slice with a nil
// error means the service found nothing.
func (c *Client) Search(ctx context.Context, query string) ([]Match, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("format", "json")
	v.Set("limit", "1")

	searchURL := c.endpoint + "/search?" + v.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating geocoding request: %w", err)
	}
	// Nominatim's usage policy rejects requests without an identifying agent.
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debugf("Making request to geocoding service: %v", searchURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request to geocoding service: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("Geocoding service responded with status: %s", resp.Status)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading geocoding response body: %w", err)
	}

	var matches []Match
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("unable to decode geocoding response: %w", err)
	}

	return matches, nil
}
