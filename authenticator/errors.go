package authenticator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig indicates missing or malformed provider configuration
	ErrInvalidConfig = errors.New("invalid provider configuration")

	// ErrInvalidResponse indicates a provider response that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from provider")
)

// ProviderError is returned when a provider payload carries an error field.
// It keeps the original response so callers can branch on the status code.
type ProviderError struct {
	Response   *http.Response
	StatusCode int
	Message    string
	Payload    map[string]any
}

// NewProviderError builds a ProviderError from a response and its parsed payload
func NewProviderError(resp *http.Response, payload map[string]any) *ProviderError {
	message := payloadString(payload, "error")
	if description := payloadString(payload, "error_description"); description != "" {
		message += ": " + description
	}

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	return &ProviderError{
		Response:   resp,
		StatusCode: statusCode,
		Message:    message,
		Payload:    payload,
	}
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sign2pay error (%d): %s", e.StatusCode, e.Message)
	}
	return "sign2pay error: " + e.Message
}

// IsProviderStatus reports whether err is a ProviderError with the given HTTP status
func IsProviderStatus(err error, statusCode int) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode == statusCode
	}
	return false
}

// hasError reports whether the payload carries a non-empty error field
func hasError(payload map[string]any) bool {
	return payloadString(payload, "error") != ""
}

// payloadString returns the string form of a payload field, or "" when the
// field is absent or empty (nil, false, zero, "", "0", empty object or list)
func payloadString(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok || isEmptyValue(value) {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// isEmptyValue reports whether a decoded JSON value counts as empty
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == "" || v == "0"
	case float64:
		return v == 0
	case int:
		return v == 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
