package llm

import (
	"os"

	"animefinder/internal/platform/config"
)

// ConfigFrom reads SERVICE_LLM_* values from process config/env
// the key falls back to OPENAI_API_KEY so existing deployments keep working
func ConfigFrom(cfg config.Conf) Config {
	lc := cfg.Prefix("SERVICE_LLM_")
	key := lc.MayString("API_KEY", "")
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	return Config{
		APIKey:      key,
		BaseURL:     lc.MayString("BASE_URL", defaultBaseURL),
		Model:       lc.MayString("MODEL", defaultModel),
		Timeout:     lc.MayDuration("TIMEOUT", defaultTimeout),
		Temperature: lc.MayFloat64("TEMPERATURE", defaultTemperature),
		MaxTokens:   lc.MayInt("MAX_TOKENS", defaultMaxTokens),
	}
}
