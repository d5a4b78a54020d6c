package gateway

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler(t *testing.T, upstream http.HandlerFunc) *Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	h, err := NewHandler(Config{AppSecret: "s3cret", APIKey: "sk-server", UpstreamURL: srv.URL})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func unreachable(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called")
	}
}

func TestPreflight(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, unreachable(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected 200 empty body, got %d %q", rec.Code, rec.Body.String())
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, x-app-secret, Authorization",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Fatalf("%s: expected %q, got %q", k, v, got)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, unreachable(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":{"message":"Method not allowed"}}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestUnauthorized(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, unreachable(t))
	for name, secret := range map[string]string{"missing": "", "wrong": "nope", "prefix": "s3cre"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		if secret != "" {
			req.Header.Set("x-app-secret", secret)
		}
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		if got := rec.Body.String(); got != `{"error":{"message":"Unauthorized"}}` {
			t.Fatalf("%s: unexpected body %s", name, got)
		}
	}
}

func TestRelaysWithServerKey(t *testing.T) {
	t.Parallel()
	payload := `{"model":"gpt-4o-mini","messages":[]}`
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-server" {
			t.Errorf("expected server key, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != payload {
			t.Errorf("body not forwarded verbatim: %s", body)
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set("x-app-secret", "s3cret")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected upstream status relayed, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":{"message":"slow down"}}` {
		t.Fatalf("expected upstream body relayed, got %s", rec.Body.String())
	}
}

func TestForwardsCallerAuthorization(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-user" {
			t.Errorf("expected caller key, got %q", got)
		}
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("x-app-secret", "s3cret")
	req.Header.Set("Authorization", "Bearer sk-user")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != `{"choices":[]}` {
		t.Fatalf("unexpected relay %d %s", rec.Code, rec.Body.String())
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()
	h, err := NewHandler(Config{AppSecret: "s3cret", HTTPClient: failingDoer{}})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("x-app-secret", "s3cret")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":{"message":"Internal server error"}}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestEmptySecretRejected(t *testing.T) {
	t.Parallel()
	if _, err := NewHandler(Config{AppSecret: "  "}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
