package headhunter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const searchResponse = `{
	"found": 2, "pages": 1, "per_page": 2, "page": 0,
	"items": [
		{
			"id": "1",
			"name": "Go разработчик",
			"url": "https://api.hh.ru/vacancies/1",
			"alternate_url": "https://hh.ru/vacancy/1",
			"salary": {"from": 150000, "to": null, "currency": "RUR", "gross": false},
			"published_at": "2024-03-15T10:20:30+0300",
			"snippet": {"requirement": "Опыт с <highlighttext>Go</highlighttext>", "responsibility": "Писать код"}
		},
		{
			"id": "2",
			"name": "Backend",
			"url": "https://api.hh.ru/vacancies/2",
			"salary": null,
			"published_at": "2024-03-14T09:00:00+0300",
			"snippet": {"requirement": null}
		}
	]
}`

func TestSearchVacancies(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies" {
			t.Errorf("path = %q, want /vacancies", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotUA = r.Header.Get("HH-User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL + "/", UserAgent: "test-agent"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	items, err := client.SearchVacancies(context.Background(), SearchParams{
		Text:           "golang",
		PerPage:        500,
		OnlyWithSalary: true,
	})
	if err != nil {
		t.Fatalf("SearchVacancies: %v", err)
	}

	want := map[string]string{
		"text":             "golang",
		"per_page":         "100",
		"page":             "0",
		"archived":         "false",
		"only_with_salary": "true",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if gotUA != "test-agent" {
		t.Errorf("HH-User-Agent = %q, want test-agent", gotUA)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	first, err := DecodeVacancy(items[0])
	if err != nil {
		t.Fatalf("DecodeVacancy: %v", err)
	}
	if first.Name != "Go разработчик" || first.Salary == nil || first.Salary.From == nil || *first.Salary.From != 150000 {
		t.Errorf("unexpected first item: %+v", first)
	}
	if first.Salary.To != nil {
		t.Errorf("Salary.To = %v, want nil", *first.Salary.To)
	}
	second, err := DecodeVacancy(items[1])
	if err != nil {
		t.Fatalf("DecodeVacancy: %v", err)
	}
	if second.Salary != nil {
		t.Errorf("second item salary = %+v, want nil", second.Salary)
	}
}

func TestSearchVacanciesKeepsMalformedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [
			{"id": "1", "name": "Broken", "salary": {"from": "lots"}},
			{"id": "2", "name": "Go", "salary": {"from": 100, "to": 200}}
		]}`))
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	items, err := client.SearchVacancies(context.Background(), SearchParams{Text: "go"})
	if err != nil {
		t.Fatalf("SearchVacancies: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	if _, err := DecodeVacancy(items[0]); err == nil {
		t.Error("expected decode error for string salary bound")
	}
	good, err := DecodeVacancy(items[1])
	if err != nil {
		t.Fatalf("DecodeVacancy: %v", err)
	}
	if good.Name != "Go" || good.Salary == nil || *good.Salary.To != 200 {
		t.Errorf("unexpected item: %+v", good)
	}
}

func TestSearchVacanciesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"type":"bad_user_agent"}]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := client.SearchVacancies(context.Background(), SearchParams{Text: "go"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
}

func TestSearchVacanciesEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"found":0}`))
	}))
	defer srv.Close()

	client, _ := NewClient(Config{BaseURL: srv.URL})
	items, err := client.SearchVacancies(context.Background(), SearchParams{Text: "cobol"})
	if err != nil {
		t.Fatalf("SearchVacancies: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}

func TestSearchVacanciesRequiresText(t *testing.T) {
	client, _ := NewClient(Config{})
	if _, err := client.SearchVacancies(context.Background(), SearchParams{}); err == nil {
		t.Fatal("expected error for empty text")
	}
}
