package http

import (
	"net/http"
	"testing"

	"expenses/internal/services"
	"expenses/internal/store/memory"
)

func newThrottledServer(t *testing.T, writesPerMinute int) (*memory.Store, *Server) {
	t.Helper()
	st := memory.New()
	srv := New(services.NewExpenseService(st, nil))
	srv.limiter = newRateLimiter(writesPerMinute)
	return st, srv
}

func TestProbes(t *testing.T) {
	h, _ := newTestServer(t)

	for _, target := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, h, http.MethodGet, target, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", "")
	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestRateLimiterWindow(t *testing.T) {
	l := newRateLimiter(2)

	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("requests within the limit should pass")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("third request in the window should be rejected")
	}
	// Other clients have their own window.
	if !l.allow("10.0.0.2") {
		t.Fatal("separate client should not be throttled")
	}
}

func TestWriteRateLimitRejectsWith429(t *testing.T) {
	st, srv := newThrottledServer(t, 1)
	h := srv.Routes()

	body := `{"message": "05/12/2024; 5.00; Home; x"}`
	if rec := doJSON(t, h, http.MethodPost, "/expenses", body); rec.Code != http.StatusCreated {
		t.Fatalf("first write status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/expenses", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second write status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("missing Retry-After header")
	}
	if st.Len() != 1 {
		t.Fatalf("throttled write must not be stored, len=%d", st.Len())
	}

	// Reads pass through regardless of the write limit.
	if rec := doJSON(t, h, http.MethodGet, "/expenses?month=December&year=2024", ""); rec.Code != http.StatusOK {
		t.Fatalf("read status = %d, want 200", rec.Code)
	}
}
