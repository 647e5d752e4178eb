package headhunter

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
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "vacancy-scanner/0.1 (vacancy-scanner@localhost)"
	defaultPerPage   = 50
	maxPerPage       = 100
	defaultTimeout   = 15 * time.Second
)

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("headhunter: API error (%d): %s", e.StatusCode, e.Body)
}

// NewClient instantiates a HeadHunter API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("headhunter: parse base url: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
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
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// SearchVacancies performs a single search request for the first page of results.
// Items are returned undecoded; see DecodeVacancy.
func (c *Client) SearchVacancies(ctx context.Context, params SearchParams) ([]json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("headhunter: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("headhunter: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("HH-User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headhunter: request failed: %w", err)
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
		return nil, fmt.Errorf("headhunter: decode response: %w", err)
	}

	if payload.Items == nil {
		return []json.RawMessage{}, nil
	}
	return payload.Items, nil
}

// SearchURL returns the endpoint queried for params; used in error reports
func (c *Client) SearchURL(params SearchParams) string {
	u, err := c.buildSearchURL(params)
	if err != nil {
		return c.baseURL + "/vacancies"
	}
	return u
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.Text) == "" {
		return "", fmt.Errorf("headhunter: search text is required")
	}

	u, err := url.Parse(c.baseURL + "/vacancies")
	if err != nil {
		return "", fmt.Errorf("headhunter: parse base url: %w", err)
	}

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	values := url.Values{}
	values.Set("text", params.Text)
	values.Set("per_page", strconv.Itoa(perPage))
	values.Set("page", "0")
	values.Set("archived", "false")
	if params.OnlyWithSalary {
		values.Set("only_with_salary", "true")
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
