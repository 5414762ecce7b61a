package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"animefinder/internal/platform/net/middleware"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("scene parser exploded")
	})))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify", nil)
	req.Header.Set("X-Request-ID", "rid-9")

	rr := serve(h, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-9" {
		t.Fatalf("request id header = %q", rr.Header().Get("X-Request-ID"))
	}
	var body struct {
		StatusCode int    `json:"status_code"`
		Error      string `json:"error"`
		RequestID  string `json:"request_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.StatusCode != 500 || body.RequestID != "rid-9" || body.Error == "" {
		t.Fatalf("body = %+v", body)
	}
	if strings.Contains(rr.Body.String(), "exploded") {
		t.Fatalf("panic value leaked to client: %s", rr.Body.String())
	}
}

func TestRecoverJSON_ReraisesAbort(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate")
		}
	}()
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_PassesThrough(t *testing.T) {
	for _, slow := range []time.Duration{0, time.Nanosecond} {
		h := middleware.AccessLog(slow)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "ok")
		}))
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
		if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
			t.Fatalf("slow=%v: %d %q", slow, rr.Code, rr.Body.String())
		}
	}
}

func TestHeartbeat_ShortCircuits(t *testing.T) {
	h := middleware.Heartbeat("/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next should not run for heartbeat")
	}))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCompress_Gzip(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat(`{"title":"Naruto"}`, 300))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	if enc := serve(h, req).Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q", enc)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://app.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/identify", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := serve(h, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
