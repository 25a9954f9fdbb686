package deepseek

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/PauloHFS/deepseek/internal/logging"
)

const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeMalformed = "malformed"
	OutcomeTransport = "transport"
	OutcomeConfig    = "config"
	OutcomeUnknown   = "unknown"
)

// Chat sends prompt as a single user message and returns the content of the
// first choice. The prompt is forwarded unvalidated.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.Complete(ctx, c.NewRequest(NewUserMessage(prompt)))
	if err != nil {
		return "", err
	}
	return resp.FirstContent()
}

// Complete performs one POST to the chat-completion endpoint. An empty
// req.Model is replaced by the client's model; every other field is sent
// as given.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if req.Model == "" {
		req.Model = c.model
	}

	logging.AddToEvent(ctx,
		slog.String("model", req.Model),
		slog.Int("messages", len(req.Messages)),
	)

	body, err := encodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, chatCompletionsPath, body)
	if err != nil {
		return nil, err
	}

	completion, err := c.roundTrip(httpReq)
	logging.AddToEvent(ctx, slog.String("outcome", Outcome(err)))
	if err != nil {
		return nil, err
	}

	if completion.Usage != nil {
		logging.AddToEvent(ctx, slog.Int("total_tokens", completion.Usage.TotalTokens))
	}

	return completion, nil
}

func (c *Client) roundTrip(req *http.Request) (*ChatResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response body", Err: err}
	}

	return decodeResponse(resp.StatusCode, raw)
}

// Outcome classifies err into the label used by logs and metrics.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var (
		apiErr       *APIError
		malformedErr *MalformedResponseError
		transportErr *TransportError
		cfgErr       *ConfigurationError
	)
	switch {
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case errors.As(err, &malformedErr):
		return OutcomeMalformed
	case errors.As(err, &transportErr):
		return OutcomeTransport
	case errors.As(err, &cfgErr):
		return OutcomeConfig
	default:
		return OutcomeUnknown
	}
}
