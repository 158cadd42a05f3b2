package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
)

// toolErrorEnvelope is the structured error payload tool callers receive.
// It carries enough of the backend's error body for an agent to react
// (e.g. insufficient_stock details) without parsing free text.
type toolErrorEnvelope struct {
	ErrorCode  string                     `json:"error_code"`
	Detail     string                     `json:"detail,omitempty"`
	HTTPStatus int                        `json:"http_status,omitempty"`
	Fields     map[string][]string        `json:"fields,omitempty"`
	Extra      map[string]json.RawMessage `json:"extra,omitempty"`
}

type toolError struct {
	Envelope toolErrorEnvelope
}

func (e toolError) Error() string {
	envelope := map[string]any{"error": e.Envelope}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return `{"error":{"error_code":"tool_error","detail":"failed to encode error envelope"}}`
	}
	return string(encoded)
}

func classifyToolError(err error) toolErrorEnvelope {
	env := toolErrorEnvelope{ErrorCode: "tool_error", Detail: strings.TrimSpace(err.Error())}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		env.HTTPStatus = apiErr.StatusCode
		if apiErr.Detail != "" {
			env.Detail = apiErr.Detail
		}
		if apiErr.Code != "" {
			env.ErrorCode = apiErr.Code
		}
		env.Fields = apiErr.Fields
		env.Extra = apiErr.Extra
		return env
	}
	if errors.Is(err, client.ErrUnavailable) {
		env.ErrorCode = "server_unavailable"
	}
	if errors.Is(err, client.ErrUnauthorized) {
		env.ErrorCode = "unauthorized"
	}
	return env
}

// withToolGuards applies the per-server rate limit and converts handler
// errors into structured envelopes.
func withToolGuards[In, Out any](s *server, h mcpsdk.ToolHandlerFor[In, Out]) mcpsdk.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, Out, error) {
		var zero Out
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, zero, toolError{Envelope: toolErrorEnvelope{
				ErrorCode: "rate_limited",
				Detail:    err.Error(),
			}}
		}
		res, out, err := h(ctx, req, input)
		if err == nil {
			return res, out, nil
		}
		return nil, zero, toolError{Envelope: classifyToolError(err)}
	}
}
