package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
)

// serveDoc decorates the generated document on every request
func serveDoc(read func() (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, err := read()
		var spec map[string]any
		if err == nil {
			err = json.Unmarshal([]byte(raw), &spec)
		}
		if err != nil {
			http.Error(w, "spec unavailable", http.StatusInternalServerError)
			return
		}
		decorate(spec, "/api/v1")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// decorate lifts the document to OAS 3.0.3, which the UI renders, and adds the
// error envelope every endpoint can return
func decorate(spec map[string]any, baseURL string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": baseURL}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	defaults := map[string]any{
		"400": errorResponse("Bad Request", "description must be at least 10 characters"),
		"500": errorResponse("Internal Server Error", "internal error"),
		"503": errorResponse("Service Unavailable", "history is disabled"),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(o, "responses")
			for code, resp := range defaults {
				if _, exists := resps[code]; !exists {
					resps[code] = resp
				}
			}
		}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	return map[string]any{
		"type":        "object",
		"description": "Standard error envelope",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status", "error"},
	}
}

func errorResponse(desc, msg string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{"status": desc, "error": msg},
			},
		},
	}
}
