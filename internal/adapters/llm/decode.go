package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	perr "animefinder/internal/platform/errors"
)

// DecodeJSON unmarshals a model reply into target
// Code fences are stripped and, failing a direct parse, the outermost {...} is extracted
func DecodeJSON(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return invalid(fmt.Errorf("empty payload"))
	}

	directErr := json.Unmarshal([]byte(trimmed), target)
	if directErr == nil {
		return nil
	}

	sanitized := extractObject(stripCodeFence(trimmed))
	if sanitized == "" || sanitized == trimmed {
		return invalid(fmt.Errorf("%w (payload: %s)", directErr, snippet(trimmed)))
	}
	if err := json.Unmarshal([]byte(sanitized), target); err != nil {
		return invalid(fmt.Errorf("%w (sanitized payload: %s)", err, snippet(sanitized)))
	}
	return nil
}

func invalid(err error) error {
	return perr.Wrap(fmt.Errorf("%w: %w", ErrInvalidResponse, err), perr.ErrorCodeUpstream, MsgInvalidResponse)
}

func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	body := strings.TrimLeft(t[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if i := strings.LastIndex(body, "```"); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

// extractObject returns the span from the first '{' to the last '}'
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[start : end+1])
}
