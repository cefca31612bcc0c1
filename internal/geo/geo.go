// Package geo looks up the player's approximate location from their public IP.
// Lookups are best effort: callers treat any error as "no location".
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultURL = "https://ipapi.co/json/"

type Location struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

// Complete reports whether both city and region are known.
func (l *Location) Complete() bool {
	return l != nil && l.City != "" && l.Region != ""
}

// Locator resolves the caller's location.
type Locator interface {
	Locate(ctx context.Context) (*Location, error)
}

// Client queries an ipapi.co compatible JSON endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Locator = (*Client)(nil)

func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.Unmarshal(body, &loc); err != nil {
		return nil, fmt.Errorf("failed to parse geolocation response: %w", err)
	}

	c.logger.Debug("Geolocation lookup succeeded", "city", loc.City, "region", loc.Region)
	return &loc, nil
}

// BestEffort runs l.Locate and returns nil on any failure, including a nil
// locator. It never returns an error.
func BestEffort(ctx context.Context, l Locator, logger *slog.Logger) *Location {
	if l == nil {
		return nil
	}
	loc, err := l.Locate(ctx)
	if err != nil {
		if logger != nil {
			logger.Debug("IP lookup failed", "error", err)
		}
		return nil
	}
	return loc
}
