package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"animefinder/internal/platform/config"
	phttp "animefinder/internal/platform/net/http"
)

func profilerStatus(enabled bool, path string) int {
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "/debug", enabled)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if code := profilerStatus(true, path); code != http.StatusOK {
			t.Fatalf("%s = %d", path, code)
		}
	}
	if code := profilerStatus(false, "/debug/pprof/"); code != http.StatusNotFound {
		t.Fatalf("disabled profiler answered %d", code)
	}
}
