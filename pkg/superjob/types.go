package superjob

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config defines SuperJob API client settings
type Config struct {
	AppID      string // sent as X-Api-App-Id
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration // used when HTTPClient is nil
}

// Client queries the SuperJob vacancy search API
type Client struct {
	appID      string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a vacancy search request
type SearchParams struct {
	Keyword        string
	Count          int
	OnlyWithSalary bool
}

type vacanciesResponse struct {
	Objects []json.RawMessage `json:"objects"`
	Total   int               `json:"total"`
	More    bool              `json:"more"`
}

// Vacancy is one raw item of the search response
type Vacancy struct {
	ID            int    `json:"id"`
	Profession    string `json:"profession"`
	Link          string `json:"link"`
	PaymentFrom   int    `json:"payment_from"` // 0 when not specified
	PaymentTo     int    `json:"payment_to"`   // 0 when not specified
	Currency      string `json:"currency"`
	DatePublished int64  `json:"date_published"` // unix seconds
	Candidat      string `json:"candidat"`
	FirmName      string `json:"firm_name"`
	Town          struct {
		Title string `json:"title"`
	} `json:"town"`
	IsArchive bool `json:"is_archive"`
}

// DecodeVacancy decodes one item returned by SearchVacancies. Items are kept
// raw so that one malformed entry does not fail the whole page.
func DecodeVacancy(raw json.RawMessage) (Vacancy, error) {
	var v Vacancy
	if err := json.Unmarshal(raw, &v); err != nil {
		return Vacancy{}, fmt.Errorf("superjob: decode vacancy: %w", err)
	}
	return v, nil
}
