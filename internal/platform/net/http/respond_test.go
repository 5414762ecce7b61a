package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "animefinder/internal/platform/errors"
	lumnet "animefinder/internal/platform/net"
	phttp "animefinder/internal/platform/net/http"
)

func serveResponse(t *testing.T, resp phttp.Response) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify", nil)
	req = req.WithContext(lumnet.WithRequestID(req.Context(), "rid-42"))
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return resp })(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestHandle_Success(t *testing.T) {
	t.Parallel()

	rec, env := serveResponse(t, phttp.OK(map[string]any{"success": true}))
	if rec.Code != http.StatusOK || env.StatusCode != http.StatusOK || env.Status != "OK" {
		t.Fatalf("status=%d env=%+v", rec.Code, env)
	}
	if env.RequestID != "rid-42" || env.Data == nil {
		t.Fatalf("env = %+v", env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	rec, _ = serveResponse(t, phttp.Response{Status: http.StatusCreated, Body: "id-1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("created = %d", rec.Code)
	}

	rec, _ = serveResponse(t, phttp.Response{Body: "x", Header: http.Header{"X-Cache": {"hit"}}})
	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "hit" {
		t.Fatalf("zero status should default to 200 and keep headers: %d %v", rec.Code, rec.Header())
	}
}

func TestHandle_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		err   error
		code  int
		field string
	}{
		{"validation", perr.WithField(perr.Validationf("description must be at least 10 characters"), "description"), http.StatusBadRequest, "description"},
		{"unavailable", perr.Unavailablef("history requires postgres"), http.StatusServiceUnavailable, ""},
		{"plain", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, c := range cases {
		rec, env := serveResponse(t, phttp.Error(c.err))
		if rec.Code != c.code || env.StatusCode != c.code {
			t.Fatalf("%s: status=%d env=%+v", c.name, rec.Code, env)
		}
		if env.Field != c.field || env.Error == "" || env.RequestID != "rid-42" {
			t.Fatalf("%s: env = %+v", c.name, env)
		}
		if env.Data != nil {
			t.Fatalf("%s: error envelope carries data", c.name)
		}
	}
}
