package superjob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	vacancydomain "github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
	"github.com/honeycarbs/vacancy-scanner/pkg/superjob"
)

const providerName = "superjob"

// searchClient describes the subset of the SuperJob client used by the provider.
type searchClient interface {
	SearchVacancies(ctx context.Context, params superjob.SearchParams) ([]json.RawMessage, error)
	SearchURL(params superjob.SearchParams) string
}

// Provider implements vacancy.Provider using the SuperJob API
type Provider struct {
	client  searchClient
	checker domain.URLChecker
	logger  *logging.Logger
}

// NewProvider builds a SuperJob provider. checker may be nil to skip link checks.
func NewProvider(client searchClient, checker domain.URLChecker, logger *logging.Logger) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("superjob provider: client is required")
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

// Search queries SuperJob and returns the vacancies that passed validation
func (p *Provider) Search(ctx context.Context, keyword string, count int) ([]domain.Vacancy, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("superjob provider: client is nil")
	}

	params := superjob.SearchParams{
		Keyword:        keyword,
		Count:          count,
		OnlyWithSalary: true,
	}

	items, err := p.client.SearchVacancies(ctx, params)
	if err != nil {
		netErr := &domain.NetworkError{Source: providerName, URL: p.client.SearchURL(params), Err: err}
		var apiErr *superjob.APIError
		if errors.As(err, &apiErr) {
			netErr.StatusCode = apiErr.StatusCode
		}
		return nil, netErr
	}

	out := make([]domain.Vacancy, 0, len(items))
	for i, raw := range items {
		item, err := superjob.DecodeVacancy(raw)
		if err != nil {
			p.logger.Warn("skipping vacancy", "index", i, "err", err)
			continue
		}
		v, err := domain.NewVacancy(ctx, toInput(item), p.checker)
		if err != nil {
			p.logger.Warn("skipping vacancy", "id", item.ID, "title", item.Profession, "err", err)
			continue
		}
		out = append(out, v)
	}

	return out, nil
}

var _ vacancydomain.Provider = (*Provider)(nil)

func toInput(item superjob.Vacancy) domain.VacancyInput {
	in := domain.VacancyInput{
		Title:        item.Profession,
		URL:          item.Link,
		Currency:     item.Currency,
		PubDate:      pubDate(item.DatePublished),
		Requirements: item.Candidat,
	}

	// SuperJob reports an unspecified bound as 0
	if item.PaymentFrom > 0 {
		from := item.PaymentFrom
		to := item.PaymentTo
		if to <= 0 {
			to = from
		}
		in.SalaryMin = &from
		in.SalaryMax = &to
	}

	return in
}

// pubDate converts epoch seconds to a UTC calendar date
func pubDate(epoch int64) string {
	if epoch <= 0 {
		return ""
	}
	return time.Unix(epoch, 0).UTC().Format(domain.DateLayout)
}
