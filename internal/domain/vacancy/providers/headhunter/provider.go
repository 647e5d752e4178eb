package headhunter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	vacancydomain "github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-scanner/pkg/headhunter"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
)

const providerName = "headhunter"

// searchClient describes the subset of the HeadHunter client used by the provider.
type searchClient interface {
	SearchVacancies(ctx context.Context, params headhunter.SearchParams) ([]json.RawMessage, error)
	SearchURL(params headhunter.SearchParams) string
}

// Provider implements vacancy.Provider using the HeadHunter API
type Provider struct {
	client  searchClient
	checker domain.URLChecker
	logger  *logging.Logger
}

// NewProvider builds a HeadHunter provider. checker may be nil to skip link checks.
func NewProvider(client searchClient, checker domain.URLChecker, logger *logging.Logger) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("headhunter provider: client is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		client:  client,
		checker: checker,
		logger:  logger.With("provider", providerName),
	}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return providerName
}

// Search queries HeadHunter and returns the vacancies that passed validation
func (p *Provider) Search(ctx context.Context, keyword string, count int) ([]domain.Vacancy, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("headhunter provider: client is nil")
	}

	params := headhunter.SearchParams{
		Text:           keyword,
		PerPage:        count,
		OnlyWithSalary: true,
	}

	items, err := p.client.SearchVacancies(ctx, params)
	if err != nil {
		netErr := &domain.NetworkError{Source: providerName, URL: p.client.SearchURL(params), Err: err}
		var apiErr *headhunter.APIError
		if errors.As(err, &apiErr) {
			netErr.StatusCode = apiErr.StatusCode
		}
		return nil, netErr
	}

	out := make([]domain.Vacancy, 0, len(items))
	for i, raw := range items {
		item, err := headhunter.DecodeVacancy(raw)
		if err != nil {
			p.logger.Warn("skipping vacancy", "index", i, "err", err)
			continue
		}
		v, err := domain.NewVacancy(ctx, toInput(item), p.checker)
		if err != nil {
			p.logger.Warn("skipping vacancy", "id", item.ID, "title", item.Name, "err", err)
			continue
		}
		out = append(out, v)
	}

	return out, nil
}

var _ vacancydomain.Provider = (*Provider)(nil)

func toInput(item headhunter.Vacancy) domain.VacancyInput {
	in := domain.VacancyInput{
		Title:        item.Name,
		URL:          item.URL,
		PubDate:      pubDate(item.PublishedAt),
		Requirements: cleanSnippet(item.Snippet.Requirement),
	}

	if s := item.Salary; s != nil {
		from, to := s.From, s.To
		// a single bound stands for both
		if from == nil {
			from = to
		}
		if to == nil {
			to = from
		}
		in.SalaryMin = from
		in.SalaryMax = to
		in.Currency = s.Currency
	}

	return in
}

// pubDate keeps the calendar date of an ISO timestamp such as 2024-03-15T10:20:30+0300
func pubDate(publishedAt string) string {
	if len(publishedAt) < len(domain.DateLayout) {
		return publishedAt
	}
	return publishedAt[:len(domain.DateLayout)]
}

// cleanSnippet drops <highlighttext> and other markup from HH snippets
func cleanSnippet(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
