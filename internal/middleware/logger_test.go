package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestLogger_RecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	handler := chimiddleware.RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1}`))
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/food/get-food/1", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}

	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusOK)
	}
	if entry["bytes"] != float64(len(`{"id":1}`)) {
		t.Errorf("bytes = %v", entry["bytes"])
	}
	if entry["path"] != "/api/food/get-food/1" {
		t.Errorf("path = %v", entry["path"])
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusCreated, "INFO"},
		{http.StatusForbidden, "WARN"},
		{http.StatusNotFound, "WARN"},
		{http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		handler := Logger(logger.NewWithWriter(&buf, "info"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/food/create-food", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("status %d: failed to decode log entry: %v", tt.status, err)
		}
		if entry["level"] != tt.want {
			t.Errorf("status %d: level = %v, want %s", tt.status, entry["level"], tt.want)
		}
	}
}
