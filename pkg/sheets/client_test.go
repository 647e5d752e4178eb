package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Config{
		Endpoint:   srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestAppendValues(t *testing.T) {
	var gotPath, gotInput string
	var gotRows [][]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("valueInputOption")

		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotRows = body.Values

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":2}}`))
	})

	n, err := c.AppendValues(context.Background(), "sheet-id", "Vacancies!A1", [][]any{
		{"Go Developer", 100},
		{"QA", 50},
	})
	if err != nil {
		t.Fatalf("AppendValues: %v", err)
	}
	if n != 2 {
		t.Errorf("updated rows = %d, want 2", n)
	}
	if !strings.Contains(gotPath, "/spreadsheets/sheet-id/values/") || !strings.HasSuffix(gotPath, ":append") {
		t.Errorf("path = %q", gotPath)
	}
	if gotInput != "RAW" {
		t.Errorf("valueInputOption = %q, want RAW", gotInput)
	}
	if len(gotRows) != 2 || gotRows[0][0] != "Go Developer" {
		t.Errorf("rows = %v", gotRows)
	}
}

func TestUpdateValuesError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	})

	if _, err := c.UpdateValues(context.Background(), "sheet-id", "A2", [][]any{{"x"}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClearValues(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	if err := c.ClearValues(context.Background(), "sheet-id", "Vacancies!A2:Z"); err != nil {
		t.Fatalf("ClearValues: %v", err)
	}
	if !strings.HasSuffix(gotPath, ":clear") {
		t.Errorf("path = %q", gotPath)
	}
}
