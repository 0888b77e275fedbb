package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return rec
}

func TestRequestLogger_LogsStatusAndPath(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/park/zones", nil)
	rec := httptest.NewRecorder()

	RequestLogger(handler, logger).ServeHTTP(rec, req)

	out := decodeLogLine(t, buf)
	if out["method"] != "GET" {
		t.Fatalf("expected method in log, got %v", out)
	}
	if out["path"] != "/api/park/zones" {
		t.Fatalf("expected path in log, got %v", out)
	}
	if out["status"] != float64(201) {
		t.Fatalf("expected status in log, got %v", out)
	}
}

func TestRequestLogger_DefaultsTo200(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	RequestLogger(handler, logger).ServeHTTP(rec, req)

	out := decodeLogLine(t, buf)
	if out["status"] != float64(200) {
		t.Fatalf("expected default status 200 in log, got %v", out)
	}
}
