package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultThumbSize = 200

// Client is the REST client for the MediaWiki action API, used to resolve a
// free-text query to the lead image of its best-matching article.
type Client struct {
	baseURL    string
	thumbSize  int
	httpClient *http.Client
}

// NewClient creates a new MediaWiki client.
//
// baseURL is the action API endpoint, e.g. "https://en.wikipedia.org/w/api.php".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		thumbSize: defaultThumbSize,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type pageImagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Thumbnail struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// Thumbnail searches for the query and returns the thumbnail URL of the top
// article's lead image, or "" when either step comes back empty.
func (c *Client) Thumbnail(ctx context.Context, query string) (string, error) {
	title, err := c.searchTitle(ctx, query)
	if err != nil {
		return "", err
	}
	if title == "" {
		return "", nil
	}
	return c.pageThumbnail(ctx, title)
}

func (c *Client) searchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("format", "json")

	body, err := c.doGet(ctx, params)
	if err != nil {
		return "", fmt.Errorf("wikipedia: search %q: %w", query, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("wikipedia: decode search: %w", err)
	}

	if len(resp.Query.Search) == 0 {
		return "", nil
	}
	return resp.Query.Search[0].Title, nil
}

func (c *Client) pageThumbnail(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "pageimages")
	params.Set("format", "json")
	params.Set("pithumbsize", fmt.Sprintf("%d", c.thumbSize))

	body, err := c.doGet(ctx, params)
	if err != nil {
		return "", fmt.Errorf("wikipedia: page images %q: %w", title, err)
	}

	var resp pageImagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("wikipedia: decode page images: %w", err)
	}

	for _, page := range resp.Query.Pages {
		if page.Thumbnail.Source != "" {
			return page.Thumbnail.Source, nil
		}
	}
	return "", nil
}

func (c *Client) doGet(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
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
