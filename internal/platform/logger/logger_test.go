package logger

import (
	"bytes"
	"context"
	"testing"

	kit "animefinder/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestEnvOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "animefinder")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	opt := envOptions()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "animefinder" {
		t.Fatalf("envOptions = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 3 {
		t.Fatalf("caller/sample = %v/%d", opt.WithCaller, opt.SampleEvery)
	}
}

func TestEnvOptions_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  ")
	t.Setenv("LOG_SAMPLE_EVERY", "often")

	opt := envOptions()
	if opt.Level != "info" || opt.Format != "console" || opt.SampleEvery != 0 {
		t.Fatalf("defaults = %+v", opt)
	}
}

// Init runs once per process, so every root-logger assertion lives here
func TestInit_NamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "animefinder-api", Writer: &buf})
	Init(Options{Level: "error", Writer: &bytes.Buffer{}})

	Named("identify").Debug().Msg("scene scored")
	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-7")
	C(ctx).Info().Msg("fandom lookup")
	C(context.Background()).Info().Msg("no request")

	out := buf.String()
	kit.MustContain(t, out, `"component":"identify"`)
	kit.MustContain(t, out, `"request_id":"req-7"`)
	kit.MustContain(t, out, `"service":"animefinder-api"`)
	kit.MustContain(t, out, "no request")

	if Named("") != Get() || C(context.Background()) != Get() {
		t.Fatalf("empty component or request id should return the root logger")
	}
}
