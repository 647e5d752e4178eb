package tools

import (
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// VacancyListResult is the structured payload of tools returning vacancies
type VacancyListResult struct {
	Count     int                  `json:"count" jsonschema:"Number of vacancies"`
	Vacancies []domain.VacancyJSON `json:"vacancies" jsonschema:"Vacancies in result order"`
}

func newVacancyListResult(vacancies []domain.Vacancy) VacancyListResult {
	out := VacancyListResult{
		Count:     len(vacancies),
		Vacancies: make([]domain.VacancyJSON, 0, len(vacancies)),
	}
	for _, v := range vacancies {
		out.Vacancies = append(out.Vacancies, v.ToJSON())
	}
	return out
}

// formatVacancies renders one numbered line per vacancy followed by its link
func formatVacancies(tool, header string, vacancies []domain.Vacancy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", tool, header)
	if len(vacancies) == 0 {
		b.WriteString("\nNo vacancies")
		return b.String()
	}
	for i, v := range vacancies {
		fmt.Fprintf(&b, "\n%d. %s\n   %s", i+1, v, v.URL())
	}
	return b.String()
}

// parseVacancies validates tool payload entries without checking their links
func parseVacancies(entries []domain.VacancyJSON) ([]domain.Vacancy, error) {
	out := make([]domain.Vacancy, 0, len(entries))
	for i, entry := range entries {
		v, err := entry.Vacancy()
		if err != nil {
			return nil, fmt.Errorf("vacancy %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
