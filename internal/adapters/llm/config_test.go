package llm

import (
	"testing"
	"time"

	"animefinder/internal/platform/config"
)

func TestConfigFrom(t *testing.T) {
	t.Setenv("SERVICE_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("SERVICE_LLM_TIMEOUT", "5s")

	c := ConfigFrom(config.New())
	if c.APIKey != "sk-fallback" {
		t.Fatalf("fallback key = %q", c.APIKey)
	}
	if c.Timeout != 5*time.Second || c.Model != defaultModel || c.MaxTokens != defaultMaxTokens {
		t.Fatalf("config = %+v", c)
	}

	t.Setenv("SERVICE_LLM_API_KEY", "sk-primary")
	if c := ConfigFrom(config.New()); c.APIKey != "sk-primary" {
		t.Fatalf("primary key = %q", c.APIKey)
	}
}
