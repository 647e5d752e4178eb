package domain

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// DateLayout is the publication date format shared by every source and the vacancy file
const DateLayout = time.DateOnly

// URLChecker verifies that a vacancy link is reachable
type URLChecker interface {
	Check(ctx context.Context, rawURL string) error
}

// Salary is a normalized salary range. The zero value means "not specified".
type Salary struct {
	Min      int
	Max      int
	Currency string
}

// IsZero reports whether the salary is absent
func (s Salary) IsZero() bool {
	return s == Salary{}
}

// Medium returns the rounded middle of the range, or 0 when absent.
// Halves round to even.
func (s Salary) Medium() int {
	if s.IsZero() {
		return 0
	}
	return int(math.RoundToEven(float64(s.Min+s.Max) / 2))
}

// SalaryJSON is the wire form of Salary; an absent salary encodes as {}
type SalaryJSON struct {
	Min      *int   `json:"min,omitempty" jsonschema:"Lower bound"`
	Max      *int   `json:"max,omitempty" jsonschema:"Upper bound"`
	Currency string `json:"currency,omitempty" jsonschema:"Currency code"`
}

func (s Salary) toJSON() SalaryJSON {
	if s.IsZero() {
		return SalaryJSON{}
	}
	lo, hi := s.Min, s.Max
	return SalaryJSON{Min: &lo, Max: &hi, Currency: s.Currency}
}

// VacancyInput carries raw, unvalidated vacancy fields. Nil salary bounds mean "absent".
type VacancyInput struct {
	Title        string
	URL          string
	SalaryMin    *int
	SalaryMax    *int
	Currency     string
	PubDate      string
	Requirements string
}

// Vacancy is the normalized job posting. It is immutable and comparable with ==.
type Vacancy struct {
	title        string
	url          string
	salary       Salary
	pubDate      string
	requirements string
}

// NewVacancy validates in and builds a Vacancy. Fields are checked in order:
// title, url, salary, pub_date, requirements. The url is checked with checker
// when one is given.
func NewVacancy(ctx context.Context, in VacancyInput, checker URLChecker) (Vacancy, error) {
	title, err := checkTitle(in.Title)
	if err != nil {
		return Vacancy{}, err
	}

	link, err := checkURL(ctx, in.URL, checker)
	if err != nil {
		return Vacancy{}, err
	}

	salary, err := checkSalary(in.SalaryMin, in.SalaryMax, in.Currency)
	if err != nil {
		return Vacancy{}, err
	}

	pubDate, err := checkPubDate(in.PubDate)
	if err != nil {
		return Vacancy{}, err
	}

	requirements, err := checkRequirements(in.Requirements)
	if err != nil {
		return Vacancy{}, err
	}

	return Vacancy{
		title:        title,
		url:          link,
		salary:       salary,
		pubDate:      pubDate,
		requirements: requirements,
	}, nil
}

func (v Vacancy) Title() string        { return v.title }
func (v Vacancy) URL() string          { return v.url }
func (v Vacancy) Salary() Salary       { return v.salary }
func (v Vacancy) PubDate() string      { return v.pubDate }
func (v Vacancy) Requirements() string { return v.requirements }

// MediumSalary is the rounded average of the salary bounds; 0 without salary
func (v Vacancy) MediumSalary() int {
	return v.salary.Medium()
}

// Equal reports whether all normalized fields match
func (v Vacancy) Equal(other Vacancy) bool {
	return v == other
}

// Compare orders vacancies by MediumSalary. A missing salary ranks as 0.
func (v Vacancy) Compare(other Vacancy) int {
	return cmp.Compare(v.MediumSalary(), other.MediumSalary())
}

func (v Vacancy) String() string {
	if v.salary.IsZero() {
		return fmt.Sprintf("Vacancy %q from %s, salary not specified", v.title, v.pubDate)
	}
	return fmt.Sprintf("Vacancy %q from %s, salary from %d to %d %s",
		v.title, v.pubDate, v.salary.Min, v.salary.Max, v.salary.Currency)
}

// VacancyJSON is the flat mapping used in vacancy files and tool payloads
type VacancyJSON struct {
	Title        string     `json:"title" jsonschema:"Vacancy title"`
	URL          string     `json:"url" jsonschema:"Link to the vacancy"`
	Salary       SalaryJSON `json:"salary" jsonschema:"Salary range, empty when not specified"`
	PubDate      string     `json:"pub_date" jsonschema:"Publication date, YYYY-MM-DD"`
	Requirements string     `json:"requirements" jsonschema:"Candidate requirements snippet"`
}

// ToJSON converts the vacancy into its flat mapping
func (v Vacancy) ToJSON() VacancyJSON {
	return VacancyJSON{
		Title:        v.title,
		URL:          v.url,
		Salary:       v.salary.toJSON(),
		PubDate:      v.pubDate,
		Requirements: v.requirements,
	}
}

// Input converts the mapping back into constructor input
func (j VacancyJSON) Input() VacancyInput {
	return VacancyInput{
		Title:        j.Title,
		URL:          j.URL,
		SalaryMin:    j.Salary.Min,
		SalaryMax:    j.Salary.Max,
		Currency:     j.Salary.Currency,
		PubDate:      j.PubDate,
		Requirements: j.Requirements,
	}
}

// Vacancy validates the mapping without checking the url
func (j VacancyJSON) Vacancy() (Vacancy, error) {
	return NewVacancy(context.Background(), j.Input(), nil)
}

func (v Vacancy) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToJSON())
}

func (v *Vacancy) UnmarshalJSON(data []byte) error {
	var j VacancyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	parsed, err := j.Vacancy()
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Reason: "empty title"}
	}
	return title, nil
}

func checkURL(ctx context.Context, raw string, checker URLChecker) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValidationError{Field: "url", Reason: "empty url"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", &ValidationError{Field: "url", Value: raw, Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &ValidationError{Field: "url", Value: raw, Reason: "not an absolute http(s) url"}
	}

	if checker != nil {
		if err := checker.Check(ctx, raw); err != nil {
			return "", &ValidationError{Field: "url", Value: raw, Reason: "unreachable", Err: err}
		}
	}
	return raw, nil
}

func checkSalary(from, to *int, currency string) (Salary, error) {
	currency = strings.TrimSpace(currency)
	if from == nil || to == nil || currency == "" {
		return Salary{}, nil
	}

	lo, hi := *from, *to
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		return Salary{}, &ValidationError{
			Field:  "salary",
			Value:  fmt.Sprintf("%d-%d %s", *from, *to, currency),
			Reason: "negative bound",
		}
	}

	return Salary{Min: lo, Max: hi, Currency: currency}, nil
}

func checkPubDate(raw string) (string, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", &ValidationError{Field: "pub_date", Value: raw, Reason: "expected YYYY-MM-DD", Err: err}
	}
	if t.Format(DateLayout) != raw {
		return "", &ValidationError{Field: "pub_date", Value: raw, Reason: "expected YYYY-MM-DD"}
	}
	return raw, nil
}

func checkRequirements(requirements string) (string, error) {
	requirements = strings.TrimSpace(requirements)
	if requirements == "" {
		return "", &ValidationError{Field: "requirements", Reason: "empty requirements"}
	}
	return requirements, nil
}
