package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the REST client for the TheSportsDB team search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new TheSportsDB client.
//
// baseURL is the API root including the keyed path, e.g.
// "https://www.thesportsdb.com/api/v1/json/3".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiTeam struct {
	StrTeam  string `json:"strTeam"`
	StrBadge string `json:"strBadge"`
}

type searchTeamsResponse struct {
	Teams []apiTeam `json:"teams"`
}

// TeamBadge returns the badge image URL for the first team matching name,
// or "" when the search comes back empty.
func (c *Client) TeamBadge(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("t", name)

	body, err := c.doGet(ctx, "/searchteams.php?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("sportsdb: search teams %q: %w", name, err)
	}

	var resp searchTeamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("sportsdb: decode teams: %w", err)
	}

	if len(resp.Teams) == 0 {
		return "", nil
	}
	return resp.Teams[0].StrBadge, nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
