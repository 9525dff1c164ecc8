package jobsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Request carries the parameters for one provider query.
type Request struct {
	Query         string   `json:"search_term"`
	Location      string   `json:"location"`
	ResultsWanted int      `json:"results_wanted"`
	HoursOld      int      `json:"hours_old"`
	Country       string   `json:"country_indeed"`
	Sites         []string `json:"site_name"`
}

// Provider runs a single search query against an external multi-source job
// search service and returns its raw, dict-like rows.
type Provider interface {
	Search(ctx context.Context, req Request) ([]map[string]any, error)
}

// Client talks to a JobSpy-compatible scrape service over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

const (
	searchPath = "/api/search"

	// Scraping two boards for one query routinely takes tens of seconds.
	searchTimeout = 180 * time.Second
)

var defaultSites = []string{"indeed", "linkedin"}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: searchTimeout,
		},
		logger: logger,
	}
}

type searchResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

func (c *Client) Search(ctx context.Context, req Request) ([]map[string]any, error) {
	if len(req.Sites) == 0 {
		req.Sites = defaultSites
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + searchPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("scraper request",
		zap.String("url", url),
		zap.String("query", req.Query),
		zap.String("location", req.Location),
		zap.String("country", req.Country),
	)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("scraper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("scraper: bad status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode scraper response: %w", err)
	}

	return decoded.Jobs, nil
}
