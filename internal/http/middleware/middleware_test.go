package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	tests := []struct {
		name           string
		handlerStatus  int
		handlerBody    string
		expectedStatus int
	}{
		{name: "OK response", handlerStatus: http.StatusOK, handlerBody: "hello", expectedStatus: http.StatusOK},
		{name: "Not found", handlerStatus: http.StatusNotFound, handlerBody: "missing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = RequestID(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.handlerBody))
			})

			rr := httptest.NewRecorder()
			Logging(log)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/students", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			body, _ := io.ReadAll(rr.Body)
			assert.Equal(t, tt.handlerBody, string(body))

			reqID := rr.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, strings.TrimSpace(reqID))
			assert.Equal(t, reqID, seenID)

			line := buf.String()
			assert.Contains(t, line, "request_id="+reqID)
			assert.Contains(t, line, "status="+strconv.Itoa(tt.expectedStatus))
			assert.Contains(t, line, "uri=/api/students")
		})
	}
}

func TestRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestID(req.Context()))
}

func TestMetrics_Instrument(t *testing.T) {
	m := NewMetrics("api")

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/students/"+id, nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/students/{id}", "404"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
}

func TestMetrics_InstrumentTransport(t *testing.T) {
	m := NewMetrics("web")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &http.Client{Transport: m.InstrumentTransport(nil)}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstream.WithLabelValues("500", "get")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("api")
	m.requests.WithLabelValues(http.MethodGet, "/api/students", "200").Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "students_http_requests_total")
	assert.Contains(t, rr.Body.String(), `service="api"`)
}
