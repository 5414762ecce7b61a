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
	"animefinder/internal/services/api/recommend/domain"
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

func post(t *testing.T, m modkit.Module, body string) (int, envelope) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, env
}

func TestRecommend_HTTP(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), LLM: stubLLM{reply: `{"recommendations":[{"title":"Mushishi","reasoning":"calm","confidence":0.8,"genres":["Mystery"]}]}`}})
	code, env := post(t, m, `{"title":"Natsume's Book of Friends","genres":["Supernatural"]}`)
	if code != http.StatusOK || !env.Data.Success {
		t.Fatalf("status=%d env=%+v", code, env)
	}
	if len(env.Data.Recommendations) != 1 || env.Data.Recommendations[0].Title != "Mushishi" {
		t.Fatalf("data = %+v", env.Data)
	}
}

func TestRecommend_HTTP_Errors(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), LLM: stubLLM{}})
	code, env := post(t, m, `{"title":"  "}`)
	if code != http.StatusBadRequest || env.Field != "title" {
		t.Fatalf("blank title: %d %+v", code, env)
	}

	code, env = post(t, m, `{"title":"Naruto"}`)
	if code != http.StatusOK || env.Data.Success || env.Data.Error != llm.MsgNotConfigured {
		t.Fatalf("not configured: %d %+v", code, env.Data)
	}
}
