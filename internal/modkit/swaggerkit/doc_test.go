package swaggerkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDecorate(t *testing.T) {
	spec := map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/identify": map[string]any{
				"post": map[string]any{"responses": map[string]any{"400": "custom"}},
			},
		},
	}
	decorate(spec, "/api/v1")

	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version not lifted: %v", spec)
	}
	if _, ok := child(child(spec, "components"), "schemas")["ErrorResponse"]; !ok {
		t.Fatalf("error schema missing")
	}
	resps := spec["paths"].(map[string]any)["/identify"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if resps["400"] != "custom" {
		t.Fatalf("existing response overwritten: %v", resps["400"])
	}
	if resps["500"] == nil || resps["503"] == nil {
		t.Fatalf("defaults missing: %v", resps)
	}
}

func TestServeDoc(t *testing.T) {
	rec := httptest.NewRecorder()
	serveDoc(readDoc)(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["servers"] == nil || rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("spec = %v", spec)
	}

	rec = httptest.NewRecorder()
	serveDoc(func() (string, error) { return "", errors.New("not registered") })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
