package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/acgh213/peoplefinder/internal/middleware"
)

func serve(t *testing.T, logger *slog.Logger, path string, status int) {
	t.Helper()
	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}),
	)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
}

// TestSlogLogger_logsRequestFields verifies that one JSON line carries the
// method, path, status, duration and request ID.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	serve(t, slog.New(slog.NewJSONHandler(&buf, nil)), "/people/jane", http.StatusOK)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/people/jane", entry["path"])
	require.EqualValues(t, http.StatusOK, entry["status"])
	require.Equal(t, "test-req-id", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_serverErrorsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	serve(t, slog.New(slog.NewJSONHandler(&buf, nil)), "/", http.StatusBadGateway)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.EqualValues(t, http.StatusBadGateway, entry["status"])
}

func TestSlogLogger_skipsNoisyPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	for _, p := range []string{"/health", "/metrics", "/static/css/app.css"} {
		serve(t, logger, p, http.StatusOK)
	}
	require.Zero(t, buf.Len(), "unexpected log output: %s", buf.String())
}
