package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubDatabase struct {
	pingErr error
}

func (s *stubDatabase) Connect(ctx context.Context) error { return nil }
func (s *stubDatabase) Close() error                      { return nil }
func (s *stubDatabase) Ping(ctx context.Context) error    { return s.pingErr }

func (s *stubDatabase) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	return nil, nil
}

func (s *stubDatabase) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func (s *stubDatabase) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	return nil
}

func TestHealthCheck(t *testing.T) {
	t.Run("returns 200 when the database responds", func(t *testing.T) {
		h := NewHealthHandler(&stubDatabase{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Check(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to parse body: %v", err)
		}
		if body["status"] != "ok" || body["database"] != "ok" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("returns 503 when the database is unreachable", func(t *testing.T) {
		h := NewHealthHandler(&stubDatabase{pingErr: errors.New("connection refused")})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Check(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to parse body: %v", err)
		}
		if body["status"] != "degraded" || body["database"] != "unreachable" {
			t.Errorf("unexpected body %v", body)
		}
	})
}
