package deepseek

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// maxDiagnosticBody caps how much of an unparseable body is kept on
// MalformedResponseError.
const maxDiagnosticBody = 1024

// decodeResponse interprets a complete response body as exactly one of the
// error envelope or a chat completion. The error shape is tried first, so a
// body carrying both "error" and "choices" is an APIError.
func decodeResponse(statusCode int, body []byte) (*ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		if err == nil {
			err = ErrUnknownShape
		}
		return nil, newMalformed(statusCode, body, err)
	}

	if apiErr, ok := decodeAPIError(statusCode, body); ok {
		return nil, apiErr
	}

	return decodeChatResponse(statusCode, body)
}

func decodeAPIError(statusCode int, body []byte) (*APIError, bool) {
	if !gjson.GetBytes(body, "error").IsObject() {
		return nil, false
	}
	if gjson.GetBytes(body, "error.message").Type != gjson.String {
		return nil, false
	}

	var resp APIErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    resp.Error.Message,
		Type:       resp.Error.Type,
		Param:      resp.Error.Param,
		Code:       formatCode(resp.Error.Code),
	}, true
}

func decodeChatResponse(statusCode int, body []byte) (*ChatResponse, error) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, newMalformed(statusCode, body, ErrUnknownShape)
	}

	choices := root.Get("choices")
	if !choices.IsArray() {
		return nil, newMalformed(statusCode, body, ErrUnknownShape)
	}

	var shapeErr error
	idx := 0
	choices.ForEach(func(_, choice gjson.Result) bool {
		if !choice.Get("message").IsObject() {
			shapeErr = fmt.Errorf("choice %d has no message: %w", idx, ErrUnknownShape)
			return false
		}
		idx++
		return true
	})
	if shapeErr != nil {
		return nil, newMalformed(statusCode, body, shapeErr)
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newMalformed(statusCode, body, err)
	}

	if len(resp.Choices) == 0 {
		return nil, newMalformed(statusCode, body, ErrNoChoices)
	}

	return &resp, nil
}

func newMalformed(statusCode int, body []byte, err error) *MalformedResponseError {
	if len(body) > maxDiagnosticBody {
		body = body[:maxDiagnosticBody]
	}
	kept := make([]byte, len(body))
	copy(kept, body)
	return &MalformedResponseError{
		StatusCode: statusCode,
		Body:       kept,
		Err:        err,
	}
}

// formatCode normalizes the provider's code, which is a string on DeepSeek
// but a number or null on some compatible gateways.
func formatCode(code any) string {
	switch v := code.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
