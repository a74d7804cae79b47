package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

const (
	// DefaultBaseURL is the public OpenTopoData endpoint
	DefaultBaseURL = "https://api.opentopodata.org"

	// DefaultDataset is the terrain dataset queried by default (EU-DEM, 25 m)
	DefaultDataset = "eudem25m"

	// MaxBatchSize is the maximum number of coordinates per provider request
	MaxBatchSize = 90

	// DefaultTimeout bounds a single provider request
	DefaultTimeout = 10 * time.Second

	// DefaultBackoff is the sleep before the single rate-limit retry
	DefaultBackoff = 1 * time.Second
)

// Client queries a terrain elevation service in bounded batches
type Client struct {
	BaseURL    string
	Dataset    string
	Backoff    time.Duration
	HTTPClient *http.Client

	// sleep is replaceable in tests
	sleep func(time.Duration)
}

// NewClient creates a provider client. Empty arguments fall back to the
// OpenTopoData defaults
func NewClient(baseURL, dataset string, timeout, backoff time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if dataset == "" {
		dataset = DefaultDataset
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Client{
		BaseURL:    baseURL,
		Dataset:    dataset,
		Backoff:    backoff,
		HTTPClient: &http.Client{Timeout: timeout},
		sleep:      time.Sleep,
	}
}

type providerResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Lookup fetches elevations for the batch, in input order. The batch must not
// exceed MaxBatchSize. A rate-limited request sleeps the backoff and retries
// exactly once
func (c *Client) Lookup(ctx context.Context, coords []spatial.Point) ([]float64, error) {
	if len(coords) == 0 {
		return nil, nil
	}
	if len(coords) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds maximum %d", len(coords), MaxBatchSize)
	}

	elevations, err := c.lookupOnce(ctx, coords)
	if err == errRateLimited {
		c.sleep(c.Backoff)
		elevations, err = c.lookupOnce(ctx, coords)
	}
	if err == errRateLimited {
		err = fmt.Errorf("provider rate limit persisted after retry")
	}
	return elevations, err
}

var errRateLimited = fmt.Errorf("provider rate limited")

func (c *Client) lookupOnce(ctx context.Context, coords []spatial.Point) ([]float64, error) {
	locations := make([]string, len(coords))
	for i, p := range coords {
		locations[i] = fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
	}

	endpoint := fmt.Sprintf("%s/v1/%s?locations=%s",
		strings.TrimRight(c.BaseURL, "/"), c.Dataset, url.QueryEscape(strings.Join(locations, "|")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if parsed.Status != "" && parsed.Status != "OK" {
		return nil, fmt.Errorf("provider status %q", parsed.Status)
	}
	if len(parsed.Results) != len(coords) {
		return nil, fmt.Errorf("provider returned %d results for %d locations", len(parsed.Results), len(coords))
	}

	elevations := make([]float64, len(coords))
	for i, r := range parsed.Results {
		if r.Elevation == nil {
			return nil, fmt.Errorf("provider returned null elevation at index %d", i)
		}
		elevations[i] = *r.Elevation
	}
	return elevations, nil
}
