package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/mcp/tools"
)

const defaultTab = "Sheet1"

var sheetHeader = []any{
	"Title", "URL", "Salary from", "Salary to", "Currency", "Medium salary", "Published", "Requirements",
}

// sheetsWriter is the subset of pkg/sheets.Client used by the exporter
type sheetsWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
}

// sheetsExporter maps vacancies to spreadsheet rows
type sheetsExporter struct {
	client sheetsWriter
	now    func() time.Time
}

var _ tools.SheetsExporter = (*sheetsExporter)(nil)

func newSheetsExporter(client sheetsWriter) *sheetsExporter {
	return &sheetsExporter{client: client, now: time.Now}
}

func (e *sheetsExporter) Export(ctx context.Context, req tools.SheetsExport) (tools.SheetsExportResult, error) {
	tab := req.Sheet.Tab
	if tab == "" {
		tab = defaultTab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           tab,
		Mode:          "append",
	}
	if req.Upsert {
		result.Mode = "upsert"
	}

	if req.ClearTab {
		if err := e.client.ClearValues(ctx, req.Sheet.SpreadsheetID, fmt.Sprintf("%s!A2:Z", tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	if req.Header {
		if _, err := e.client.UpdateValues(ctx, req.Sheet.SpreadsheetID, fmt.Sprintf("%s!A1", tab), [][]any{sheetHeader}); err != nil {
			return result, fmt.Errorf("sheets: failed to write header: %w", err)
		}
	}

	if len(req.Vacancies) == 0 {
		result.CompletedAt = e.now().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	rng := req.Sheet.Range
	if rng == "" {
		rng = buildRange(tab, req.Upsert || req.Header)
	}
	values := vacancyRows(req.Vacancies)

	var (
		written int
		err     error
	)
	if req.Upsert {
		written, err = e.client.UpdateValues(ctx, req.Sheet.SpreadsheetID, rng, values)
	} else {
		written, err = e.client.AppendValues(ctx, req.Sheet.SpreadsheetID, rng, values)
	}
	if err != nil {
		return result, fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	result.WrittenRows = written
	result.CompletedAt = e.now().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", written)
	return result, nil
}

// buildRange starts below the header row when one is present
func buildRange(tab string, belowHeader bool) string {
	if belowHeader {
		return fmt.Sprintf("%s!A2", tab)
	}
	return fmt.Sprintf("%s!A1", tab)
}

func vacancyRows(vacancies []domain.Vacancy) [][]any {
	values := make([][]any, len(vacancies))
	for i, v := range vacancies {
		s := v.Salary()
		var from, to, medium any = "", "", ""
		if !s.IsZero() {
			from, to, medium = s.Min, s.Max, v.MediumSalary()
		}
		values[i] = []any{
			v.Title(),
			v.URL(),
			from,
			to,
			s.Currency,
			medium,
			v.PubDate(),
			v.Requirements(),
		}
	}
	return values
}
