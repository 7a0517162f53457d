// Package serpapi provides a minimal HTTP client for the SerpAPI Google
// search endpoint, covering just the result shapes the vendor finder reads.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://serpapi.com"
	defaultTimeout = 30 * time.Second
)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is an HTTP client for the SerpAPI search endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new SerpAPI client. The default HTTP client carries an
// otelhttp-instrumented transport so outbound searches appear in traces.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a single search hit, local or organic. Rating and Reviews are
// pointers so absent fields are distinguishable from zero values.
type Result struct {
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Snippet string   `json:"snippet"`
	Rating  *float64 `json:"rating"`
	Reviews *int     `json:"reviews"`
}

// Results is the subset of a SerpAPI response the vendor finder consumes.
type Results struct {
	LocalResults   []Result
	OrganicResults []Result
}

// UnmarshalJSON decodes both shapes SerpAPI uses for the local pack: a bare
// array of places, or an envelope object {"places": [...]}.
func (r *Results) UnmarshalJSON(data []byte) error {
	var raw struct {
		LocalResults   json.RawMessage `json:"local_results"`
		OrganicResults []Result        `json:"organic_results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.OrganicResults = raw.OrganicResults
	r.LocalResults = nil

	if len(raw.LocalResults) == 0 {
		return nil
	}

	var direct []Result
	if err := json.Unmarshal(raw.LocalResults, &direct); err == nil {
		r.LocalResults = direct
		return nil
	}

	var envelope struct {
		Places []Result `json:"places"`
	}
	if err := json.Unmarshal(raw.LocalResults, &envelope); err != nil {
		return fmt.Errorf("local_results has unexpected shape: %w", err)
	}
	r.LocalResults = envelope.Places
	return nil
}

// Local returns the local-pack results in provider order.
func (r *Results) Local() []Result {
	return r.LocalResults
}

// Organic returns the organic results in provider order.
func (r *Results) Organic() []Result {
	return r.OrganicResults
}

// Search runs the query against the Google engine, restricted to English and
// the India region, and decodes the result sets the caller cares about.
func (c *Client) Search(ctx context.Context, query string) (*Results, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("hl", "en")
	params.Set("gl", "in")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := parseErrorMessage(respBody); msg != "" {
			return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var results Results
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &results, nil
}

// parseErrorMessage pulls the "error" field SerpAPI returns on failures.
func parseErrorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}
