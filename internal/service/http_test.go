package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHealthzReflectsPreflight(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, "")
	handler := f.svc.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before preflight healthz must be 503, got %d", rec.Code)
	}

	if err := f.svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("after preflight healthz must be 200, got %d", rec.Code)
	}
}

func TestDistributionsEndpoint(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, "")
	if err := f.svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	handler := f.svc.Handler()

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"requester_id":"42","address":"` + f.target + `"}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/distributions", body))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("want 202, got %d", rec.Code)
	}

	// The distribution runs in the background; wait for the reply.
	deadline := time.Now().Add(2 * time.Second)
	for f.notifier.count("42") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no reply arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !strings.Contains(f.notifier.last("42"), "on the way") {
		t.Fatalf("want success reply, got %q", f.notifier.last("42"))
	}
}

func TestDistributionsEndpointValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, "")
	handler := f.svc.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/distributions", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/distributions", strings.NewReader(`{"address":"x"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing requester_id must be 400, got %d", rec.Code)
	}
}
