package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source defines the remote operations the fetch layer needs.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	Search(ctx context.Context, query string) ([]Meal, error)
	FilterByCategory(ctx context.Context, category string) ([]MealSummary, error)
	Lookup(ctx context.Context, id string) (*Meal, error)
	Random(ctx context.Context) (*Meal, error)
	Categories(ctx context.Context) ([]Category, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to a TheMealDB-compatible HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL        = "https://www.themealdb.com/api/json/v1/1"
	DefaultRequestTimeout = 8 * time.Second
	defaultUserAgent      = "recetas/0.1"
)

// NewClient builds a Client for baseURL. A non-positive timeout uses
// DefaultRequestTimeout; the timeout bounds each individual request.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Search looks meals up by name. A null "meals" field yields a nil slice.
func (c *Client) Search(ctx context.Context, query string) ([]Meal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("s", query)
	var payload MealsResponse
	if err := c.do(ctx, "search.php", values, &payload); err != nil {
		return nil, err
	}
	return payload.Meals, nil
}

// FilterByCategory lists the meal summaries filed under an external category name.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]MealSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("c", category)
	var payload SummariesResponse
	if err := c.do(ctx, "filter.php", values, &payload); err != nil {
		return nil, err
	}
	return payload.Meals, nil
}

// Lookup fetches one meal by id. It returns nil, nil when the id is unknown.
func (c *Client) Lookup(ctx context.Context, id string) (*Meal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("meal id required")
	}
	values := url.Values{}
	values.Set("i", id)
	var payload MealsResponse
	if err := c.do(ctx, "lookup.php", values, &payload); err != nil {
		return nil, err
	}
	return first(payload.Meals), nil
}

// Random fetches one random meal.
func (c *Client) Random(ctx context.Context) (*Meal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload MealsResponse
	if err := c.do(ctx, "random.php", nil, &payload); err != nil {
		return nil, err
	}
	return first(payload.Meals), nil
}

// Categories lists the categories known to the API.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload CategoriesResponse
	if err := c.do(ctx, "categories.php", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

func first(meals []Meal) *Meal {
	if len(meals) == 0 || strings.TrimSpace(meals[0].ID) == "" {
		return nil
	}
	meal := meals[0]
	return &meal
}

func (c *Client) do(ctx context.Context, endpoint string, values url.Values, dest any) error {
	reqURL := c.baseURL.JoinPath(endpoint)
	if len(values) > 0 {
		reqURL.RawQuery = values.Encode()
	}
	return c.doURL(ctx, http.MethodGet, reqURL, dest)
}

func (c *Client) doURL(ctx context.Context, method string, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
