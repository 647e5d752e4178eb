package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
)

// SheetTarget names the destination of an export
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Sheet1 when empty"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Vacancies []domain.VacancyJSON `json:"vacancies" jsonschema:"Vacancies to write, one row each"`
	Sheet     SheetTarget          `json:"sheet" jsonschema:"Destination sheet information"`
	Upsert    bool                 `json:"upsert,omitempty" jsonschema:"Overwrite rows below the header (true) or append (false)"`
	ClearTab  bool                 `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab below the header before writing"`
	Header    bool                 `json:"header,omitempty" jsonschema:"Write a header row first"`
}

// SheetsExport is a validated export request
type SheetsExport struct {
	Sheet     SheetTarget
	Vacancies []domain.Vacancy
	Upsert    bool
	ClearTab  bool
	Header    bool
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	Mode          string    `json:"mode" jsonschema:"append or upsert"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

// SheetsExporter writes vacancies to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, req SheetsExport) (SheetsExportResult, error)
}

type sheetsExportTool struct {
	exporter SheetsExporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(exporter SheetsExporter, logger *logging.Logger) Option {
	return func(reg *registry) {
		if logger == nil {
			logger = logging.NewNop()
		}
		handler := sheetsExportTool{exporter: exporter, logger: logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export vacancies to Google Sheets, one row per vacancy",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.exporter == nil {
		return nil, nil, fmt.Errorf("sheets export not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")
	}
	if params == nil || params.Sheet.SpreadsheetID == "" {
		return nil, nil, &domain.ValidationError{Field: "sheet.spreadsheet_id", Reason: "spreadsheet id is required"}
	}

	vacancies, err := parseVacancies(params.Vacancies)
	if err != nil {
		return nil, nil, err
	}

	t.logger.Info("sheets_export request",
		"spreadsheet_id", params.Sheet.SpreadsheetID,
		"tab", params.Sheet.Tab,
		"vacancies", len(vacancies),
		"upsert", params.Upsert,
	)

	result, err := t.exporter.Export(ctx, SheetsExport{
		Sheet:     params.Sheet,
		Vacancies: vacancies,
		Upsert:    params.Upsert,
		ClearTab:  params.ClearTab,
		Header:    params.Header,
	})
	if err != nil {
		t.logger.Error("sheets_export failed", "spreadsheet_id", params.Sheet.SpreadsheetID, "err", err)
		return nil, nil, fmt.Errorf("export failed: %w", err)
	}

	msg := fmt.Sprintf("[sheets_export] mode=%s spreadsheet_id=%q tab=%q rows=%d",
		result.Mode, result.SpreadsheetID, result.Tab, result.WrittenRows)
	return textResult(msg), result, nil
}
