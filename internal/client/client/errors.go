package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means the server could not be reached at all
	// (connection refused, DNS failure, timeout). The CLI falls back to
	// the offline cache on this error.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is the unrecoverable auth failure: no usable refresh
	// token, or the refresh call itself was rejected. The session is
	// cleared by the time callers see it.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response decoded from the backend's error envelope
// {"detail": ..., "code": ..., "fields": {...}}. Action endpoints attach
// extra keys (e.g. insufficient_stock carries "available",
// "already_in_invoice", "can_add"); those land in Extra.
type APIError struct {
	StatusCode int
	Detail     string
	Code       string
	Fields     map[string][]string
	Extra      map[string]json.RawMessage
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "" && e.Code != "":
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	case e.Code != "":
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
	default:
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// decodeAPIError builds an *APIError from a response body. A body that is
// not a JSON object still yields a usable error with just the status code.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	for key, value := range raw {
		switch key {
		case "detail":
			_ = json.Unmarshal(value, &apiErr.Detail)
		case "code":
			_ = json.Unmarshal(value, &apiErr.Code)
		case "fields":
			_ = json.Unmarshal(value, &apiErr.Fields)
		default:
			if apiErr.Extra == nil {
				apiErr.Extra = make(map[string]json.RawMessage)
			}
			apiErr.Extra[key] = value
		}
	}
	return apiErr
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
