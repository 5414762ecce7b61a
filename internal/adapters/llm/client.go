// Package llm is a single-shot chat completion client for OpenAI compatible endpoints
// Every call makes exactly one attempt; failures come back as perr errors wrapping a sentinel
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	lumnet "animefinder/internal/platform/net"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultModel       = "gpt-4"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.2
	defaultMaxTokens   = 2000
	jsonResponseType   = "json_object"
	maxBodyBytes       = 4 << 20
)

// Sentinels callers can test with errors.Is
var (
	ErrNotConfigured   = errors.New("llm: api key not configured")
	ErrTimeout         = errors.New("llm: request timed out")
	ErrProvider        = errors.New("llm: provider error")
	ErrInvalidResponse = errors.New("llm: invalid response")
)

// Wire messages, safe to show end users
const (
	MsgNotConfigured   = "AI service is not configured"
	MsgTimeout         = "AI service timed out"
	MsgProvider        = "AI service returned an error"
	MsgInvalidResponse = "AI service returned an invalid response"
	MsgEmpty           = "No response from AI"
	MsgCanceled        = "AI request was canceled"
)

// Completer is the narrow seam services depend on
type Completer interface {
	Complete(ctx context.Context, system, user string, opts ...CallOption) (string, error)
	Configured() bool
}

// Config captures the runtime settings for the provider
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Client talks to one chat completion endpoint
type Client struct {
	cfg  Config
	http *http.Client
	log  logger.Logger
	now  func() time.Time
}

// Option customizes the client
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// CallOption tunes a single Complete call
type CallOption func(*chatCompletionRequest)

// WithTemperature overrides the configured temperature for one call
func WithTemperature(t float64) CallOption {
	return func(r *chatCompletionRequest) { r.Temperature = t }
}

// WithMaxTokens overrides the configured token cap for one call
func WithMaxTokens(n int) CallOption {
	return func(r *chatCompletionRequest) {
		if n > 0 {
			r.MaxTokens = n
		}
	}
}

// NewClient builds a client with defaults for anything left unset
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  *logger.Named("llm"),
		now:  time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c != nil && c.cfg.APIKey != "" }

// Model returns the configured model name
func (c *Client) Model() string { return c.cfg.Model }

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
		// some gateways answer with the streaming shape even when stream=false
		Delta        chatCompletionMessage `json:"delta"`
		Text         string                `json:"text"`
		FinishReason string                `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type chatCompletionMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

// Complete sends one JSON-mode chat completion and returns the raw content of the first non-empty choice
func (c *Client) Complete(ctx context.Context, system, user string, opts ...CallOption) (string, error) {
	if !c.Configured() {
		return "", perr.Wrap(ErrNotConfigured, perr.ErrorCodeUnavailable, MsgNotConfigured)
	}
	system, user = strings.TrimSpace(system), strings.TrimSpace(user)
	if system == "" || user == "" {
		return "", perr.InvalidArgf("llm: system and user prompts are required")
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: map[string]string{"type": jsonResponseType},
	}
	for _, o := range opts {
		o(&payload)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "llm encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "llm new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := lumnet.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return "", c.transportError(ctx, err, lat)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", c.transportError(ctx, err, lat)
	}

	logger.C(ctx).Debug().
		Str("component", "llm").
		Str("model", payload.Model).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("bytes", len(body)).
		Msg("llm http response")

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", perr.Wrapf(
			fmt.Errorf("%w: http %d: %s", ErrProvider, resp.StatusCode, snippet(string(body))),
			perr.ErrorCodeUpstream, "%s (status %d)", MsgProvider, resp.StatusCode,
		)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", perr.Wrap(fmt.Errorf("%w: decode envelope: %w", ErrInvalidResponse, err), perr.ErrorCodeUpstream, MsgInvalidResponse)
	}
	if completion.Error != nil {
		return "", perr.Wrap(fmt.Errorf("%w: %s", ErrProvider, strings.TrimSpace(completion.Error.Message)), perr.ErrorCodeUpstream, MsgProvider)
	}

	content, finish, refusal := extractCompletion(completion)
	if content == "" {
		return "", perr.Wrap(
			fmt.Errorf("%w: empty content (choices=%d finish_reason=%q refusal=%q)", ErrInvalidResponse, len(completion.Choices), finish, refusal),
			perr.ErrorCodeUpstream, MsgEmpty,
		)
	}
	return content, nil
}

// transportError classifies a failed round trip
// deadlines and net timeouts are ErrTimeout, caller cancellation is reported as such, everything else is ErrProvider
func (c *Client) transportError(ctx context.Context, err error, lat time.Duration) error {
	c.log.Warn().Err(err).Dur("latency", lat).Dur("timeout", c.http.Timeout).Msg("llm transport error")

	if errors.Is(err, context.Canceled) && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, MsgCanceled)
	}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return perr.Wrap(fmt.Errorf("%w: %w", ErrTimeout, err), perr.ErrorCodeTimeout, MsgTimeout)
	}
	return perr.Wrap(fmt.Errorf("%w: %w", ErrProvider, err), perr.ErrorCodeUpstream, MsgProvider)
}

func extractCompletion(completion chatCompletionResponse) (content, finish, refusal string) {
	for _, ch := range completion.Choices {
		if finish == "" {
			finish = strings.TrimSpace(ch.FinishReason)
		}
		if refusal == "" {
			refusal = firstNonEmpty(ch.Message.Refusal, ch.Delta.Refusal)
		}
		if s := firstNonEmpty(ch.Message.Content, ch.Delta.Content, ch.Text); s != "" {
			return s, finish, refusal
		}
	}
	return "", finish, refusal
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// snippet flattens whitespace and caps s for error messages
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "<empty>"
	}
	const limit = 160
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
