// Package n2yo is a client for the N2YO satellite REST API: radio pass
// predictions and satellite metadata.
package n2yo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/passes"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://api.n2yo.com/rest/v1"
	maxBodyBytes    = 4 << 20

	// observerAltitude is sent with every pass query; N2YO takes meters
	observerAltitude = 0
)

// Config holds the credential and endpoint. The key is sent as the apiKey
// query parameter on every request.
type Config struct {
	APIKey      string
	APIEndpoint string
	Timeout     time.Duration
}

// Client talks to the N2YO REST API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

type info struct {
	SatID             int    `json:"satid"`
	SatName           string `json:"satname"`
	TransactionsCount int    `json:"transactionscount"`
	PassesCount       int    `json:"passescount"`
}

type passesResponse struct {
	Info   info          `json:"info"`
	Passes []passes.Pass `json:"passes"`
	Error  string        `json:"error"`
}

type tleResponse struct {
	Info  info   `json:"info"`
	TLE   string `json:"tle"`
	Error string `json:"error"`
}

// NewClient creates an N2YO client
func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.APIEndpoint, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Passes returns the radio passes of one satellite over loc within the next
// days, above minElevation degrees. An empty slice with a nil error means no
// pass falls in the window.
func (c *Client) Passes(ctx context.Context, loc location.Location, satelliteID, days int, minElevation float64) ([]passes.Pass, error) {
	path := fmt.Sprintf("/satellite/radiopasses/%d/%s/%s/%d/%d/%s",
		satelliteID,
		formatFloat(loc.Latitude),
		formatFloat(loc.Longitude),
		observerAltitude,
		days,
		formatFloat(minElevation),
	)

	var resp passesResponse
	if err := c.get(ctx, satelliteID, path, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &Error{Category: CategoryRejected, SatelliteID: satelliteID, StatusCode: http.StatusOK, Message: resp.Error}
	}

	c.logger.Debugw("radio passes received",
		"satellite", satelliteID,
		"passes", len(resp.Passes),
		"transactions", resp.Info.TransactionsCount)

	return resp.Passes, nil
}

// Name returns the catalog name of a satellite from its TLE record
func (c *Client) Name(ctx context.Context, satelliteID int) (string, error) {
	var resp tleResponse
	if err := c.get(ctx, satelliteID, fmt.Sprintf("/satellite/tle/%d", satelliteID), &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", &Error{Category: CategoryRejected, SatelliteID: satelliteID, StatusCode: http.StatusOK, Message: resp.Error}
	}

	name := strings.TrimSpace(resp.Info.SatName)
	if name == "" {
		return "", &Error{Category: CategoryNoName, SatelliteID: satelliteID, StatusCode: http.StatusOK, Message: "metadata has no satellite name"}
	}
	return name, nil
}

// get performs one GET against the API and decodes the JSON body into out
func (c *Client) get(ctx context.Context, satelliteID int, path string, out any) error {
	v := url.Values{}
	v.Set("apiKey", c.apiKey)
	reqURL := c.endpoint + path + "?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Error{Category: CategoryTransport, SatelliteID: satelliteID, Message: "error creating request", Underlying: err}
	}

	c.logger.Debugf("Making request to N2YO: %v", c.endpoint+path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The url.Error text would include the API key.
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return &Error{Category: CategoryTransport, SatelliteID: satelliteID, Message: "error making request", Underlying: err}
	}
	defer resp.Body.Close()

	c.logger.Debugf("N2YO responded with status: %s", resp.Status)

	if resp.StatusCode != http.StatusOK {
		return &Error{
			Category:    CategoryStatus,
			SatelliteID: satelliteID,
			StatusCode:  resp.StatusCode,
			Message:     fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Category: CategoryTransport, SatelliteID: satelliteID, StatusCode: resp.StatusCode, Message: "error reading response body", Underlying: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Category: CategoryBadData, SatelliteID: satelliteID, StatusCode: resp.StatusCode, Message: "unable to decode response", Underlying: err}
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
