package deepseek

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoAPIKey       = errors.New("API key is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
	ErrNoChoices      = errors.New("response contains no choices")
	ErrUnknownShape   = errors.New("response matches neither the success nor the error shape")
)

// EnvAPIKey is the environment variable holding the credential.
const EnvAPIKey = "DEEPSEEK_API_KEY"

type ConfigurationError struct {
	Variable string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Variable)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransportError reports a failure to send the request or to read the
// response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIErrorResponse is the error envelope returned by the provider.
type APIErrorResponse struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    any     `json:"code"`
}

// APIError is a provider-reported failure. Message and Code drive
// handling; Type, Param and StatusCode are diagnostic.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Param      *string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (code: %s)", e.Message, e.Code)
}

type MalformedResponseError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func IsMalformedResponseError(err error) bool {
	var malformedErr *MalformedResponseError
	return errors.As(err, &malformedErr)
}

func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusUnauthorized {
		return true
	}
	switch apiErr.Code {
	case "invalid_api_key", "authentication_error":
		return true
	}
	return apiErr.Type == "authentication_error"
}

func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests
}
