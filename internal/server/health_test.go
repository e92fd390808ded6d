package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/globalvillage/api/internal/database"
)

func TestHandleHealth(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	h := handleHealth(slog.New(slog.DiscardHandler), db, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var checks map[string]struct {
		Status string `json:"status"`
	}
	json.NewDecoder(rec.Body).Decode(&checks)
	if checks["sqlite"].Status != "ok" {
		t.Errorf("sqlite status = %q, want ok", checks["sqlite"].Status)
	}
	if _, ok := checks["redis"]; ok {
		t.Error("redis check reported without a configured client")
	}
}

func TestHandleHealthClosedDB(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Close()

	h := handleHealth(slog.New(slog.DiscardHandler), db, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
