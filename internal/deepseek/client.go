package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PauloHFS/deepseek/internal/httpclient"
)

const chatCompletionsPath = "/v1/chat/completions"

// ChatClient is implemented by Client and by TracedClient.
type ChatClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Client talks to the DeepSeek chat-completion endpoint. It is immutable
// after construction and safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	model          string
	temperature    float64
	httpClient     *http.Client
	defaultHeaders map[string]string
}

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:     URLDeepSeek,
		model:       DefaultModel,
		temperature: DefaultTemperature,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.apiKey == "" {
		return nil, &ConfigurationError{Variable: EnvAPIKey, Err: ErrNoAPIKey}
	}

	if c.httpClient == nil {
		c.httpClient = httpclient.Default().Client
	}

	return c, nil
}

// NewClientFromEnv reads the credential from DEEPSEEK_API_KEY through
// lookup, usually os.LookupEnv.
func NewClientFromEnv(lookup func(string) (string, bool), opts ...ClientOption) (*Client, error) {
	key, ok := lookup(EnvAPIKey)
	if !ok || key == "" {
		return nil, &ConfigurationError{Variable: EnvAPIKey, Err: ErrNoAPIKey}
	}
	return NewClient(append([]ClientOption{WithAPIKey(key)}, opts...)...)
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest builds a request with the client's model and temperature.
func (c *Client) NewRequest(messages ...Message) ChatRequest {
	return ChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}
}

func (c *Client) buildURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return req, nil
}

// encodeRequest marshals without HTML escaping so prompts reach the
// provider byte-for-byte.
func encodeRequest(req ChatRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
