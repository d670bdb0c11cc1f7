// Package opentopo looks up ground elevation from the Open Topo Data API.
package opentopo

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
)

const (
	defaultBaseURL = "https://api.opentopodata.org/v1"
	defaultDataset = "gebco2020"
)

// ErrNoData reports a point the dataset does not cover.
var ErrNoData = errors.New("no elevation data for location")

// Client fetches elevations from an Open Topo Data server.
type Client struct {
	baseURL    string
	dataset    string
	httpClient *http.Client
}

// NewClient builds an API client. Empty values fall back to the public
// server and the GEBCO 2020 dataset.
func NewClient(baseURL, dataset string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if strings.TrimSpace(dataset) == "" {
		dataset = defaultDataset
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		dataset: dataset,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Elevation returns metres above sea level at the point.
func (c *Client) Elevation(ctx context.Context, latitude, longitude float64) (float64, error) {
	endpoint := fmt.Sprintf("%s/%s?locations=%s", c.baseURL, url.PathEscape(c.dataset),
		url.QueryEscape(fmt.Sprintf("%.6f,%.6f", latitude, longitude)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build elevation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("elevation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("elevation request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&raw); err != nil {
		return 0, fmt.Errorf("decode elevation response: %w", err)
	}
	if raw.Status != "OK" {
		return 0, fmt.Errorf("elevation api error: %s", firstNonEmpty(raw.Error, raw.Status))
	}
	if len(raw.Results) == 0 || raw.Results[0].Elevation == nil {
		return 0, ErrNoData
	}
	return *raw.Results[0].Elevation, nil
}

type apiResponse struct {
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Results []result `json:"results"`
}

type result struct {
	Dataset   string   `json:"dataset"`
	Elevation *float64 `json:"elevation"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
