// Package gemini invokes the Gemini API for reasoning over the official
// genai client. The credential comes from the environment; a missing key is
// an ordinary reported failure on each call, never a startup crash — the MCP
// server must come up even on hosts without the key.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "google.golang.org/genai"

	"multireasoner/internal/backend"
	"multireasoner/internal/logging"
)

const DefaultModel = "gemini-2.5-flash"

const maxOutputTokens = 16384

// thinkingBudgets maps a caller depth to the token budget the model may
// spend on internal reasoning. Unrecognized depths get the largest budget.
var thinkingBudgets = map[string]int32{
	backend.DepthLow:    1024,
	backend.DepthMedium: 8192,
	backend.DepthHigh:   24576,
}

// generateFunc performs the API call itself. Tests substitute a fake so no
// client is constructed and no network is touched.
type generateFunc func(ctx context.Context, apiKey, model, prompt string, cfg *genai.GenerateContentConfig) (string, error)

type Backend struct {
	// Model is the Gemini model identifier.
	Model string
	// APIKey overrides the environment credential; empty means resolve
	// GEMINI_API_KEY at call time.
	APIKey string

	generate generateFunc
}

func New() *Backend {
	return &Backend{
		Model:    DefaultModel,
		generate: generateContent,
	}
}

var _ backend.Backend = (*Backend)(nil)

func init() {
	if err := backend.Register("gemini", New()); err != nil {
		panic(err)
	}
}

func (b *Backend) Name() string {
	return "gemini"
}

func (b *Backend) CheckAvailable() error {
	if b.apiKey() == "" {
		return errors.New("GEMINI_API_KEY not set")
	}
	return nil
}

// Consult sends one generate-content request. A missing credential fails
// immediately with no network attempt; a structurally successful response
// with empty text is a distinct failure from a transport error.
func (b *Backend) Consult(ctx context.Context, req backend.Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("prompt is required")
	}
	key := b.apiKey()
	if key == "" {
		return "", errors.New("GEMINI_API_KEY not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	budget := thinkingBudgets[backend.DepthHigh]
	if v, ok := thinkingBudgets[req.Depth]; ok {
		budget = v
	}

	logging.New("gemini").Info("calling gemini", "model", b.Model, "depth", req.Depth, "thinking_budget", budget)

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](1.0),
		MaxOutputTokens: maxOutputTokens,
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](budget)},
	}

	text, err := b.generate(ctx, key, b.Model, req.Prompt, cfg)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("gemini returned empty response")
	}

	logging.New("gemini").Info("gemini returned", "chars", len(text))
	return text, nil
}

func (b *Backend) apiKey() string {
	if b.APIKey != "" {
		return b.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// generateContent is the real API call. The client is constructed per call
// from the explicit key — no lazily initialized package-level handle.
func generateContent(ctx context.Context, apiKey, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	resp, err := cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
