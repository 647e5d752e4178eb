package vacancy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

// SortOrder selects how a vacancy list is ordered
type SortOrder string

const (
	SortBySalaryOrder SortOrder = "salary"
	SortByDateOrder   SortOrder = "date"
)

// ParseSortOrder validates a user supplied sort key
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortBySalaryOrder:
		return SortBySalaryOrder, nil
	case SortByDateOrder:
		return SortByDateOrder, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort dispatches to SortBySalary or SortByDate. limit only applies to date ordering.
func Sort(vacancies []domain.Vacancy, order SortOrder, limit int) ([]domain.Vacancy, error) {
	switch order {
	case SortBySalaryOrder:
		return SortBySalary(vacancies), nil
	case SortByDateOrder:
		return SortByDate(vacancies, limit), nil
	default:
		return nil, fmt.Errorf("unknown sort order %q", order)
	}
}

// SortBySalary orders by medium salary, highest first. Ties keep input order.
func SortBySalary(vacancies []domain.Vacancy) []domain.Vacancy {
	out := slices.Clone(vacancies)
	slices.SortStableFunc(out, func(a, b domain.Vacancy) int {
		return b.Compare(a)
	})
	return out
}

// SortByDate orders by publication date, newest first, and keeps at most limit
// entries. A negative limit keeps everything.
func SortByDate(vacancies []domain.Vacancy, limit int) []domain.Vacancy {
	out := slices.Clone(vacancies)
	// YYYY-MM-DD sorts lexicographically
	slices.SortStableFunc(out, func(a, b domain.Vacancy) int {
		return strings.Compare(b.PubDate(), a.PubDate())
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterByRequirement keeps vacancies whose requirements contain needle, ignoring case
func FilterByRequirement(vacancies []domain.Vacancy, needle string) []domain.Vacancy {
	needle = strings.ToLower(needle)
	out := make([]domain.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if strings.Contains(strings.ToLower(v.Requirements()), needle) {
			out = append(out, v)
		}
	}
	return out
}
