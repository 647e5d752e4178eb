package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
)

// VacancySearchParams defines the arguments for the vacancy_search tool
type VacancySearchParams struct {
	Source  string `json:"source" jsonschema:"Vacancy source: headhunter (hh) or superjob (sj)"`
	Keyword string `json:"keyword" jsonschema:"Search keyword"`
	Count   int    `json:"count,omitempty" jsonschema:"Number of vacancies to request; 0 uses the source default"`
}

// VacancySortParams defines the arguments for the vacancy_sort tool
type VacancySortParams struct {
	Vacancies []domain.VacancyJSON `json:"vacancies" jsonschema:"Vacancies to order"`
	Order     string               `json:"order,omitempty" jsonschema:"salary (default, highest medium salary first) or date (newest first)"`
	Limit     *int                 `json:"limit,omitempty" jsonschema:"Keep at most this many vacancies when ordering by date; omit to keep all"`
}

// VacancyFilterParams defines the arguments for the vacancy_filter tool
type VacancyFilterParams struct {
	Vacancies []domain.VacancyJSON `json:"vacancies" jsonschema:"Vacancies to filter"`
	Keyword   string               `json:"keyword" jsonschema:"Case-insensitive substring searched in requirements"`
}

// VacancySaveParams defines the arguments for the vacancy_save tool
type VacancySaveParams struct {
	Path      string               `json:"path" jsonschema:"Vacancy file (or collection) to merge into"`
	Vacancies []domain.VacancyJSON `json:"vacancies" jsonschema:"Vacancies to save"`
}

// VacancyLoadParams defines the arguments for the vacancy_load tool
type VacancyLoadParams struct {
	Path string `json:"path" jsonschema:"Vacancy file (or collection) to read"`
}

// VacancySourcesParams is empty; vacancy_sources takes no arguments
type VacancySourcesParams struct{}

// VacancySaveResult summarizes a save
type VacancySaveResult struct {
	Path  string `json:"path" jsonschema:"Destination"`
	Saved int    `json:"saved" jsonschema:"Number of vacancies submitted"`
}

type vacancyTools struct {
	service vacancy.Service
	logger  *logging.Logger
}

// WithVacancyTools registers vacancy_search, vacancy_sources, vacancy_sort,
// vacancy_filter, vacancy_save and vacancy_load
func WithVacancyTools(service vacancy.Service, logger *logging.Logger) Option {
	return func(reg *registry) {
		if logger == nil {
			logger = logging.NewNop()
		}
		t := vacancyTools{service: service, logger: logger}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_search",
			Description: "Fetch one page of vacancies for a keyword from HeadHunter or SuperJob",
		}, t.search)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_sources",
			Description: "List the vacancy sources this server can query",
		}, t.sources)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_sort",
			Description: "Order vacancies by medium salary or by publication date",
		}, t.sort)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_filter",
			Description: "Keep vacancies whose requirements mention a keyword",
		}, t.filter)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_save",
			Description: "Merge vacancies into a vacancy file without duplicates",
		}, t.save)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_load",
			Description: "Read every vacancy stored in a vacancy file",
		}, t.load)

		logger.Info("vacancy tools registered", "sources", service.Sources())
	}
}

func (t vacancyTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params *VacancySearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &VacancySearchParams{}
	}

	vacancies, err := t.service.Fetch(ctx, params.Source, params.Keyword, params.Count)
	if err != nil {
		t.logger.Warn("vacancy_search failed", "source", params.Source, "err", err)
		return nil, nil, searchError(err)
	}

	header := fmt.Sprintf("%d vacancies from %s for %q", len(vacancies), params.Source, params.Keyword)
	return textResult(formatVacancies("vacancy_search", header, vacancies)), newVacancyListResult(vacancies), nil
}

func searchError(err error) error {
	var netErr *domain.NetworkError
	switch {
	case errors.Is(err, vacancy.ErrUnknownSource), errors.Is(err, domain.ErrValidation):
		return err
	case errors.As(err, &netErr):
		return fmt.Errorf("source unavailable: %w", err)
	default:
		return fmt.Errorf("search failed: %w", err)
	}
}

func (t vacancyTools) sources(_ context.Context, _ *sdkmcp.CallToolRequest, _ *VacancySourcesParams) (*sdkmcp.CallToolResult, any, error) {
	names := t.service.Sources()
	msg := fmt.Sprintf("[vacancy_sources] %s", strings.Join(names, ", "))
	return textResult(msg), map[string]any{"sources": names}, nil
}

func (t vacancyTools) sort(_ context.Context, _ *sdkmcp.CallToolRequest, params *VacancySortParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &VacancySortParams{}
	}

	orderName := params.Order
	if orderName == "" {
		orderName = string(vacancy.SortBySalaryOrder)
	}
	order, err := vacancy.ParseSortOrder(orderName)
	if err != nil {
		return nil, nil, err
	}

	in, err := parseVacancies(params.Vacancies)
	if err != nil {
		return nil, nil, err
	}

	limit := -1
	if params.Limit != nil {
		limit = *params.Limit
	}

	out, err := vacancy.Sort(in, order, limit)
	if err != nil {
		return nil, nil, err
	}

	header := fmt.Sprintf("%d vacancies ordered by %s", len(out), order)
	return textResult(formatVacancies("vacancy_sort", header, out)), newVacancyListResult(out), nil
}

func (t vacancyTools) filter(_ context.Context, _ *sdkmcp.CallToolRequest, params *VacancyFilterParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &VacancyFilterParams{}
	}

	in, err := parseVacancies(params.Vacancies)
	if err != nil {
		return nil, nil, err
	}

	out := vacancy.FilterByRequirement(in, params.Keyword)

	header := fmt.Sprintf("%d of %d vacancies mention %q", len(out), len(in), params.Keyword)
	return textResult(formatVacancies("vacancy_filter", header, out)), newVacancyListResult(out), nil
}

func (t vacancyTools) save(ctx context.Context, _ *sdkmcp.CallToolRequest, params *VacancySaveParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Path) == "" {
		return nil, nil, &domain.ValidationError{Field: "path", Reason: "path is required"}
	}

	in, err := parseVacancies(params.Vacancies)
	if err != nil {
		return nil, nil, err
	}

	if err := t.service.Save(ctx, params.Path, in); err != nil {
		return nil, nil, fmt.Errorf("save failed: %w", err)
	}

	result := VacancySaveResult{Path: params.Path, Saved: len(in)}
	msg := fmt.Sprintf("[vacancy_save] merged %d vacancies into %s", len(in), params.Path)
	return textResult(msg), result, nil
}

func (t vacancyTools) load(ctx context.Context, _ *sdkmcp.CallToolRequest, params *VacancyLoadParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Path) == "" {
		return nil, nil, &domain.ValidationError{Field: "path", Reason: "path is required"}
	}

	vacancies, err := t.service.Load(ctx, params.Path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("no vacancies stored at %s: %w", params.Path, err)
		}
		return nil, nil, fmt.Errorf("load failed: %w", err)
	}

	header := fmt.Sprintf("%d vacancies loaded from %s", len(vacancies), params.Path)
	return textResult(formatVacancies("vacancy_load", header, vacancies)), newVacancyListResult(vacancies), nil
}
