package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	lumnet "animefinder/internal/platform/net"
)

type panicBody struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code"`
	Error      string         `json:"error"`
	RequestID  string         `json:"request_id,omitempty"`
}

// RecoverJSON turns a handler panic into the standard 500 envelope
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := lumnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			e := perr.PanicErrf("internal error")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(panicBody{
				StatusCode: http.StatusInternalServerError,
				Status:     http.StatusText(http.StatusInternalServerError),
				Code:       perr.CodeOf(e),
				Error:      perr.MessageOf(e),
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
