package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
)

type stubService struct {
	fetched []domain.Vacancy
	err     error
	saved   map[string][]domain.Vacancy
}

func (s *stubService) Sources() []string { return []string{"headhunter", "superjob"} }

func (s *stubService) Fetch(_ context.Context, source, _ string, _ int) ([]domain.Vacancy, error) {
	if source != "headhunter" && source != "hh" {
		return nil, vacancy.ErrUnknownSource
	}
	return s.fetched, s.err
}

func (s *stubService) Save(_ context.Context, path string, vs []domain.Vacancy) error {
	if s.saved == nil {
		s.saved = map[string][]domain.Vacancy{}
	}
	s.saved[path] = append(s.saved[path], vs...)
	return nil
}

func (s *stubService) Load(_ context.Context, path string) ([]domain.Vacancy, error) {
	vs, ok := s.saved[path]
	if !ok {
		return nil, &domain.NotFoundError{Resource: path}
	}
	return vs, nil
}

type stubExporter struct {
	got SheetsExport
}

func (e *stubExporter) Export(_ context.Context, req SheetsExport) (SheetsExportResult, error) {
	e.got = req
	return SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           req.Sheet.Tab,
		WrittenRows:   len(req.Vacancies),
		Mode:          "append",
	}, nil
}

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	Register(server, opts...)

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error(), true
	}

	var b strings.Builder
	for _, c := range res.Content {
		if txt, ok := c.(*sdkmcp.TextContent); ok {
			b.WriteString(txt.Text)
		}
	}
	return b.String(), res.IsError
}

func vacancyArgs(title string, lo, hi int, date, requirements string) map[string]any {
	return map[string]any{
		"title":        title,
		"url":          "https://hh.ru/vacancy/" + title,
		"salary":       map[string]any{"min": lo, "max": hi, "currency": "RUR"},
		"pub_date":     date,
		"requirements": requirements,
	}
}

func mustVacancy(t *testing.T, title string) domain.Vacancy {
	t.Helper()
	lo, hi := 100, 200
	v, err := domain.NewVacancy(context.Background(), domain.VacancyInput{
		Title:        title,
		URL:          "https://hh.ru/vacancy/" + title,
		SalaryMin:    &lo,
		SalaryMax:    &hi,
		Currency:     "RUR",
		PubDate:      "2024-03-15",
		Requirements: "Go",
	}, nil)
	if err != nil {
		t.Fatalf("NewVacancy: %v", err)
	}
	return v
}

func TestVacancySearch(t *testing.T) {
	svc := &stubService{fetched: []domain.Vacancy{mustVacancy(t, "Go Developer")}}
	session := connect(t, WithVacancyTools(svc, nil))

	text, isErr := call(t, session, "vacancy_search", map[string]any{"source": "hh", "keyword": "golang"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, `Vacancy "Go Developer" from 2024-03-15, salary from 100 to 200 RUR`) {
		t.Errorf("text = %q", text)
	}

	text, isErr = call(t, session, "vacancy_search", map[string]any{"source": "linkedin", "keyword": "golang"})
	if !isErr {
		t.Errorf("expected tool error for unknown source, got %q", text)
	}
}

func TestVacancySearchNetworkError(t *testing.T) {
	svc := &stubService{err: &domain.NetworkError{Source: "headhunter", StatusCode: 503}}
	session := connect(t, WithVacancyTools(svc, nil))

	text, isErr := call(t, session, "vacancy_search", map[string]any{"source": "hh", "keyword": "golang"})
	if !isErr {
		t.Fatalf("expected tool error, got %q", text)
	}
}

func TestVacancySortBySalaryAndDate(t *testing.T) {
	session := connect(t, WithVacancyTools(&stubService{}, nil))

	vacancies := []any{
		vacancyArgs("low", 10, 20, "2024-03-01", "Go"),
		vacancyArgs("high", 1000, 500, "2024-01-01", "Go"),
		vacancyArgs("mid", 100, 200, "2024-02-01", "Go"),
	}

	text, isErr := call(t, session, "vacancy_sort", map[string]any{"vacancies": vacancies})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !ordered(text, `"high"`, `"mid"`, `"low"`) {
		t.Errorf("salary order wrong:\n%s", text)
	}
	if !strings.Contains(text, "salary from 500 to 1000 RUR") {
		t.Errorf("reversed salary not normalized:\n%s", text)
	}

	text, isErr = call(t, session, "vacancy_sort", map[string]any{"vacancies": vacancies, "order": "date", "limit": 2})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !ordered(text, `"low"`, `"mid"`) || strings.Contains(text, `"high"`) {
		t.Errorf("date order wrong:\n%s", text)
	}

	text, isErr = call(t, session, "vacancy_sort", map[string]any{"vacancies": vacancies, "order": "date"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "3 vacancies ordered by date") || !ordered(text, `"mid"`, `"high"`) {
		t.Errorf("date order without limit should keep everything:\n%s", text)
	}

	text, isErr = call(t, session, "vacancy_sort", map[string]any{"vacancies": vacancies, "order": "date", "limit": 0})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "0 vacancies ordered by date") {
		t.Errorf("limit 0 should keep nothing:\n%s", text)
	}

	text, isErr = call(t, session, "vacancy_sort", map[string]any{"vacancies": vacancies, "order": "title"})
	if !isErr {
		t.Errorf("expected error for unknown order, got %q", text)
	}
}

func TestVacancySortRejectsInvalidVacancy(t *testing.T) {
	session := connect(t, WithVacancyTools(&stubService{}, nil))

	bad := vacancyArgs("", 1, 2, "2024-01-01", "Go")
	text, isErr := call(t, session, "vacancy_sort", map[string]any{"vacancies": []any{bad}})
	if !isErr {
		t.Fatalf("expected tool error, got %q", text)
	}
}

func TestVacancyFilter(t *testing.T) {
	session := connect(t, WithVacancyTools(&stubService{}, nil))

	vacancies := []any{
		vacancyArgs("a", 1, 2, "2024-01-01", "Experience with PYTHON"),
		vacancyArgs("b", 1, 2, "2024-01-01", "Java only"),
	}
	text, isErr := call(t, session, "vacancy_filter", map[string]any{"vacancies": vacancies, "keyword": "python"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, `"a"`) || strings.Contains(text, `"b"`) {
		t.Errorf("filter result wrong:\n%s", text)
	}
}

func TestVacancySaveAndLoad(t *testing.T) {
	svc := &stubService{}
	session := connect(t, WithVacancyTools(svc, nil))

	text, isErr := call(t, session, "vacancy_load", map[string]any{"path": "missing.json"})
	if !isErr {
		t.Errorf("expected error for missing file, got %q", text)
	}

	args := map[string]any{
		"path":      "vacancies.json",
		"vacancies": []any{vacancyArgs("a", 1, 2, "2024-01-01", "Go")},
	}
	if text, isErr := call(t, session, "vacancy_save", args); isErr {
		t.Fatalf("save failed: %s", text)
	}
	if got := len(svc.saved["vacancies.json"]); got != 1 {
		t.Fatalf("saved %d vacancies, want 1", got)
	}

	text, isErr = call(t, session, "vacancy_load", map[string]any{"path": "vacancies.json"})
	if isErr {
		t.Fatalf("load failed: %s", text)
	}
	if !strings.Contains(text, "1 vacancies loaded") {
		t.Errorf("text = %q", text)
	}

	if text, isErr := call(t, session, "vacancy_save", map[string]any{"path": " ", "vacancies": []any{}}); !isErr {
		t.Errorf("expected error for empty path, got %q", text)
	}
}

func TestVacancySources(t *testing.T) {
	session := connect(t, WithVacancyTools(&stubService{}, nil))

	text, isErr := call(t, session, "vacancy_sources", map[string]any{})
	if isErr || !strings.Contains(text, "headhunter, superjob") {
		t.Errorf("text = %q, isErr = %v", text, isErr)
	}
}

func TestSheetsExport(t *testing.T) {
	exporter := &stubExporter{}
	session := connect(t, WithSheetsExport(exporter, nil))

	args := map[string]any{
		"vacancies": []any{vacancyArgs("a", 1, 2, "2024-01-01", "Go")},
		"sheet":     map[string]any{"spreadsheet_id": "sheet-1", "tab": "Vacancies"},
	}
	text, isErr := call(t, session, "sheets_export", args)
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if len(exporter.got.Vacancies) != 1 || exporter.got.Sheet.Tab != "Vacancies" {
		t.Errorf("exporter got %+v", exporter.got)
	}
	if !strings.Contains(text, "rows=1") {
		t.Errorf("text = %q", text)
	}
}

func TestSheetsExportNotConfigured(t *testing.T) {
	session := connect(t, WithSheetsExport(nil, nil))

	args := map[string]any{
		"vacancies": []any{},
		"sheet":     map[string]any{"spreadsheet_id": "sheet-1"},
	}
	if text, isErr := call(t, session, "sheets_export", args); !isErr {
		t.Errorf("expected tool error, got %q", text)
	}
}

func TestSearchError(t *testing.T) {
	netErr := &domain.NetworkError{Source: "superjob", StatusCode: 500}
	if err := searchError(netErr); !errors.Is(err, domain.ErrNetwork) || !strings.Contains(err.Error(), "source unavailable") {
		t.Errorf("searchError(network) = %v", err)
	}
	if err := searchError(vacancy.ErrUnknownSource); err != vacancy.ErrUnknownSource {
		t.Errorf("searchError(unknown) = %v", err)
	}
}

// ordered reports whether subs appear in text in the given order
func ordered(text string, subs ...string) bool {
	pos := -1
	for _, s := range subs {
		i := strings.Index(text, s)
		if i <= pos {
			return false
		}
		pos = i
	}
	return true
}
