package linkcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "linkcheck-test" {
			t.Errorf("User-Agent = %q, want linkcheck-test", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(Config{RequestsPerSecond: 100, Burst: 10, UserAgent: "linkcheck-test"})

	if err := c.Check(context.Background(), srv.URL+"/ok"); err != nil {
		t.Fatalf("Check(/ok): %v", err)
	}

	err := c.Check(context.Background(), srv.URL+"/gone")
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", netErr.StatusCode)
	}
}

func TestCheckUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New(Config{})
	if err := c.Check(context.Background(), addr); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error for closed server, got %v", err)
	}
}

func TestCheckCancelledContext(t *testing.T) {
	c := New(Config{RequestsPerSecond: 0.001, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Check(ctx, "http://example.invalid"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
