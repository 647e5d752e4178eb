package vacancy

import (
	"context"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

// Repository persists and loads vacancy collections addressed by path
type Repository interface {
	// Save merges vacancies into the collection at path, skipping ones equal to stored entries
	Save(ctx context.Context, path string, vacancies []domain.Vacancy) error

	// Load returns the collection at path in stored order
	Load(ctx context.Context, path string) ([]domain.Vacancy, error)
}
