package vacancy

import (
	"context"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

// Provider represents an external vacancy source (HeadHunter, SuperJob)
type Provider interface {
	// e.g. "headhunter" or "superjob"
	Name() string

	// Search performs one request and returns the vacancies that passed validation
	Search(ctx context.Context, keyword string, count int) ([]domain.Vacancy, error)
}
