package superjob

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
)

const (
	defaultBaseURL = "https://api.superjob.ru/2.0"
	defaultCount   = 50
	maxCount       = 100
	defaultTimeout = 15 * time.Second
)

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("superjob: API error (%d): %s", e.StatusCode, e.Body)
}

// NewClient instantiates a SuperJob API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("superjob: app id is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("superjob: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		appID:      cfg.AppID,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// SearchVacancies performs a single search request for the first page of results.
// Items are returned undecoded; see DecodeVacancy.
func (c *Client) SearchVacancies(ctx context.Context, params SearchParams) ([]json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("superjob: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("superjob: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-App-Id", c.appID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("superjob: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload vacanciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("superjob: decode response: %w", err)
	}

	if payload.Objects == nil {
		return []json.RawMessage{}, nil
	}
	return payload.Objects, nil
}

// SearchURL returns the endpoint queried for params; used in error reports
func (c *Client) SearchURL(params SearchParams) string {
	u, err := c.buildSearchURL(params)
	if err != nil {
		return c.baseURL + "/vacancies/"
	}
	return u
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.Keyword) == "" {
		return "", fmt.Errorf("superjob: keyword is required")
	}

	u, err := url.Parse(c.baseURL + "/vacancies/")
	if err != nil {
		return "", fmt.Errorf("superjob: parse base url: %w", err)
	}

	count := params.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	values := url.Values{}
	values.Set("keyword", params.Keyword)
	values.Set("count", strconv.Itoa(count))
	values.Set("page", "0")
	values.Set("archive", "false")
	if params.OnlyWithSalary {
		values.Set("no_agreement", "1")
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
