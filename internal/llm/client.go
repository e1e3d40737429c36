package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Env keys selecting the LLM-backed paths. When a key is absent the
// pipeline uses the deterministic fallback for that stage.
const (
	EnvExtractorKey = "LLM_API_KEY"
	EnvReasonerKey  = "DEEP_REASONER_API_KEY"
)

// Client produces a completion for a system prompt + user prompt pair.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// AnthropicClient is the production Client backed by the Anthropic API.
type AnthropicClient struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicClient builds a client for the given model.
func NewAnthropicClient(apiKey, model string, maxTokens int, temperature float64) *AnthropicClient {
	return &AnthropicClient{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: temperature,
	}
}

// NewFromEnv builds a client from the named env var, or nil when unset.
// A nil client is not an error; it selects the deterministic path.
func NewFromEnv(envKey, model string, maxTokens int, temperature float64) *AnthropicClient {
	apiKey := os.Getenv(envKey)
	if apiKey == "" {
		slog.Info("llm key not set, using deterministic path", "env", envKey)
		return nil
	}
	return NewAnthropicClient(apiKey, model, maxTokens, temperature)
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

// Complete sends one message exchange and concatenates the text blocks of
// the response.
func (c *AnthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(c.temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := sb.String()
	if out == "" {
		return "", fmt.Errorf("anthropic completion: empty response (stop_reason=%s)", resp.StopReason)
	}
	return out, nil
}

// ExtractJSON strips markdown code fences and surrounding prose from a
// model response, returning the innermost JSON object text. Models
// frequently wrap JSON in ```json fences despite instructions.
func ExtractJSON(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
