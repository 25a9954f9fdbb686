package deepseek

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
)

const (
	URLDeepSeek        = "https://api.deepseek.com"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.7

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

type ClientOption func(*Client) error

func WithAPIKey(key string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return &ConfigurationError{Variable: EnvAPIKey, Err: ErrNoAPIKey}
		}
		c.apiKey = key
		return nil
	}
}

func WithBaseURL(rawURL string) ClientOption {
	return func(c *Client) error {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, rawURL)
		}
		c.baseURL = rawURL
		return nil
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) error {
		if model == "" {
			model = DefaultModel
		}
		c.model = model
		return nil
	}
}

func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) error {
		if temperature < MinTemperature || temperature > MaxTemperature {
			return fmt.Errorf("temperature %v outside [%v, %v]", temperature, MinTemperature, MaxTemperature)
		}
		c.temperature = temperature
		return nil
	}
}

// WithHTTPClient replaces the transport handle. A nil client keeps the
// default.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		if client == nil {
			return nil
		}
		c.httpClient = client
		return nil
	}
}

// WithDefaultHeaders adds headers to every request. They cannot override
// Authorization, Content-Type or Accept.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) error {
		c.defaultHeaders = maps.Clone(headers)
		return nil
	}
}
