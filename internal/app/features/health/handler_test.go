package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jawahirullah/portal/internal/app/features/health"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.uber.org/zap"
)

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Media    string `json:"media"`
	Mail     string `json:"mail"`
	Error    string `json:"error"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_StoreReachable(t *testing.T) {
	ok := health.PingFunc(func(context.Context) error { return nil })
	rec, resp := serve(t, health.NewHandler(ok, "memory", true, false, zap.NewNop()))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Status != "ok" || resp.Database != "connected" || resp.Backend != "memory" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Media != "enabled" || resp.Mail != "disabled" {
		t.Errorf("media/mail = %q/%q", resp.Media, resp.Mail)
	}
}

func TestServe_StoreDown(t *testing.T) {
	down := health.PingFunc(func(context.Context) error { return errors.New("connection refused") })
	rec, resp := serve(t, health.NewHandler(down, "mongo", false, false, zap.NewNop()))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Database != "disconnected" || resp.Error != "connection refused" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestServe_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(health.MongoPinger(db.Client()), "mongo", false, false, zap.NewNop())

	rec, resp := serve(t, h)
	if rec.Code != http.StatusOK || resp.Database != "connected" {
		t.Errorf("got %d %+v", rec.Code, resp)
	}
}
