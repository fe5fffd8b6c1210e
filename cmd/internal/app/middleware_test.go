package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWithRequestLogging_CapturesStatusAndBytes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	WithRequestLogging(inner, log).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "http.request" {
		t.Fatalf("msg = %v", line["msg"])
	}
	if got := line["status"].(float64); int(got) != http.StatusTeapot {
		t.Fatalf("logged status = %v", got)
	}
	if got := line["bytes"].(float64); int(got) != len("short and stout") {
		t.Fatalf("logged bytes = %v", got)
	}
	if line["path"] != "/teapot" {
		t.Fatalf("logged path = %v", line["path"])
	}
}

func TestWithRequestLogging_MetricsUseMuxPattern(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("/widgets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := WithRequestLogging(mux, log)

	matched := httpRequestsTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "200")
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	matchedBefore := testutil.ToFloat64(matched)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	// Distinct raw paths, one registered pattern: the counter must collapse
	// them instead of growing a label per path.
	for _, path := range []string{"/widgets/1", "/widgets/2", "/widgets/3"} {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
	for _, path := range []string{"/admin", "/scan-1", "/scan-2"} {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}

	if got := testutil.ToFloat64(matched) - matchedBefore; got != 3 {
		t.Fatalf("matched pattern count = %v, want 3", got)
	}
	if got := testutil.ToFloat64(unmatched) - unmatchedBefore; got != 3 {
		t.Fatalf("unmatched count = %v, want 3", got)
	}
}

func TestWithRequestLogging_DefaultsTo200(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("implicit ok"))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WithRequestLogging(inner, log).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
