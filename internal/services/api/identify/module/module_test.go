package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"animefinder/internal/adapters/llm"
	modkit "animefinder/internal/modkit"
	"animefinder/internal/platform/config"
	phttp "animefinder/internal/platform/net/http"
	"animefinder/internal/services/api/identify/domain"
)

type stubLLM struct{ reply string }

func (s stubLLM) Complete(context.Context, string, string, ...llm.CallOption) (string, error) {
	return s.reply, nil
}
func (s stubLLM) Configured() bool { return s.reply != "" }

type envelope struct {
	StatusCode int           `json:"status_code"`
	Error      string        `json:"error"`
	Field      string        `json:"field"`
	Data       domain.Result `json:"data"`
}

func serve(t *testing.T, m modkit.Module, body string) (int, envelope) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/identify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, env
}

func TestIdentify_HTTP(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), LLM: stubLLM{reply: `{"matches":[{"title":{"romaji":"Dr. Stone"},"confidence":0.99}]}`}})
	code, env := serve(t, m, `{"description":"a scientist rebuilds civilization from stone"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	if !env.Data.Success || len(env.Data.Matches) != 1 || env.Data.Matches[0].Confidence != 0.95 {
		t.Fatalf("data = %+v", env.Data)
	}

	if m.Name() != "identify" {
		t.Fatalf("name = %q", m.Name())
	}
}

func TestIdentify_HTTP_Validation(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), LLM: stubLLM{reply: `{"matches":[]}`}})

	code, env := serve(t, m, `{"description":"short"}`)
	if code != http.StatusBadRequest || env.Field != "description" {
		t.Fatalf("status=%d field=%q", code, env.Field)
	}
	if !strings.Contains(env.Error, "at least 10 characters") {
		t.Fatalf("error = %q", env.Error)
	}

	code, env = serve(t, m, `{"description":"a long enough description","additionalInfo":{"language":"klingon"}}`)
	if code != http.StatusBadRequest || env.Field == "" {
		t.Fatalf("bad language: status=%d field=%q", code, env.Field)
	}
}

func TestIdentify_HTTP_NotConfigured(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), LLM: stubLLM{}})
	code, env := serve(t, m, `{"description":"a long enough description"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if env.Data.Success || env.Data.Error != llm.MsgNotConfigured {
		t.Fatalf("data = %+v", env.Data)
	}
}
