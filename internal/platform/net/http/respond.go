// Package http holds the router abstraction, the server and the response envelope
package http

import (
	"cmp"
	"encoding/json"
	stdhttp "net/http"

	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	lumnet "animefinder/internal/platform/net"
)

// Envelope wraps every body the API sends
// Data is set on success; Code, Error and Field are set on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers produce
// An error Body picks its own status from its code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error is a response whose status and envelope come from err
func Error(err error) Response { return Response{Body: err} }

// Handle turns a Response-returning func into a handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		send(w, r, h(r))
	}
}

func send(w stdhttp.ResponseWriter, r *stdhttp.Request, resp Response) {
	for k, vv := range resp.Header {
		w.Header()[k] = append(w.Header()[k], vv...)
	}

	env := Envelope{RequestID: lumnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		wire := perr.WireFrom(err)
		env.StatusCode = perr.HTTPStatus(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
		if env.StatusCode >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).
				Int("status", env.StatusCode).
				Str("path", r.URL.Path).
				Msg("request failed")
		}
	} else {
		env.StatusCode = cmp.Or(resp.Status, stdhttp.StatusOK)
		env.Data = resp.Body
	}
	env.Status = stdhttp.StatusText(env.StatusCode)

	JSON(w, env.StatusCode, env)
}

// JSON encodes v before touching the writer so a marshal failure still yields a clean 500
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		stdhttp.Error(w, `{"status_code":500,"status":"Internal Server Error"}`, stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
