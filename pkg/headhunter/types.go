package headhunter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config defines HeadHunter API client settings
type Config struct {
	BaseURL    string
	UserAgent  string // HH rejects requests without one
	HTTPClient *http.Client
	Timeout    time.Duration // used when HTTPClient is nil
}

// Client queries the HeadHunter vacancy search API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// SearchParams describe a vacancy search request
type SearchParams struct {
	Text           string
	PerPage        int
	OnlyWithSalary bool
}

type vacanciesResponse struct {
	Items   []json.RawMessage `json:"items"`
	Found   int               `json:"found"`
	Pages   int               `json:"pages"`
	PerPage int               `json:"per_page"`
	Page    int               `json:"page"`
}

// Vacancy is one raw item of the search response
type Vacancy struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	AlternateURL string  `json:"alternate_url"`
	Salary       *Salary `json:"salary"`
	PublishedAt  string  `json:"published_at"`
	Snippet      Snippet `json:"snippet"`
	Employer     struct {
		Name string `json:"name"`
	} `json:"employer"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Archived bool `json:"archived"`
}

// Salary bounds are null when the employer left them out
type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    *bool  `json:"gross"`
}

// Snippet holds highlighted excerpts; matched words are wrapped in <highlighttext>
type Snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// DecodeVacancy decodes one item returned by SearchVacancies. Items are kept
// raw so that one malformed entry does not fail the whole page.
func DecodeVacancy(raw json.RawMessage) (Vacancy, error) {
	var v Vacancy
	if err := json.Unmarshal(raw, &v); err != nil {
		return Vacancy{}, fmt.Errorf("headhunter: decode vacancy: %w", err)
	}
	return v, nil
}
