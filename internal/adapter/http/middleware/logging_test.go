package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggingMiddleware_RecordsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var line struct {
		Level   string `json:"level"`
		Method  string `json:"method"`
		Path    string `json:"path"`
		Status  int    `json:"status"`
		Bytes   int    `json:"bytes"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if line.Message != "http request" {
		t.Fatalf("unexpected message: %q", line.Message)
	}
	if line.Level != "info" {
		t.Fatalf("expected info level, got %q", line.Level)
	}
	if line.Method != http.MethodPost || line.Path != "/api/v1/loans" {
		t.Fatalf("unexpected method/path: %s %s", line.Method, line.Path)
	}
	if line.Status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", line.Status)
	}
	if line.Bytes != len(`{"ok":true}`) {
		t.Fatalf("expected %d bytes, got %d", len(`{"ok":true}`), line.Bytes)
	}
}

func TestLoggingMiddleware_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	var line struct {
		Level  string `json:"level"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if line.Level != "error" || line.Status != http.StatusInternalServerError {
		t.Fatalf("expected error-level 500 line, got level=%q status=%d", line.Level, line.Status)
	}
}
