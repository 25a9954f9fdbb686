package deepseek

import (
	"context"
	"time"

	"github.com/PauloHFS/deepseek/internal/metrics"
)

// TracedClient records Prometheus metrics around another ChatClient.
// Chat is served through Complete so token usage is recorded for both.
type TracedClient struct {
	client      ChatClient
	model       string
	temperature float64
}

func NewTracedClient(client ChatClient, model string, temperature float64) *TracedClient {
	return &TracedClient{client: client, model: model, temperature: temperature}
}

func (c *Client) WithMetrics() *TracedClient {
	return NewTracedClient(c, c.model, c.temperature)
}

func (t *TracedClient) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := t.Complete(ctx, ChatRequest{
		Model:       t.model,
		Messages:    []Message{NewUserMessage(prompt)},
		Temperature: t.temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.FirstContent()
}

func (t *TracedClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	model := req.Model
	if model == "" {
		model = t.model
	}

	resp, err := t.client.Complete(ctx, req)

	metrics.RecordRequest(model, Outcome(err), time.Since(start))
	if err == nil && resp.Usage != nil {
		metrics.RecordTokens(model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}

	return resp, err
}
