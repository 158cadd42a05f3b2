package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/logging"
)

func TestClassifyToolError(t *testing.T) {
	t.Run("api error carries the backend envelope", func(t *testing.T) {
		apiErr := &client.APIError{
			StatusCode: 400,
			Detail:     "Insufficient stock",
			Code:       "insufficient_stock",
			Extra: map[string]json.RawMessage{
				"available": json.RawMessage(`"3"`),
				"requested": json.RawMessage(`"5"`),
			},
		}
		env := classifyToolError(fmt.Errorf("add item: %w", apiErr))

		assert.Equal(t, "insufficient_stock", env.ErrorCode)
		assert.Equal(t, "Insufficient stock", env.Detail)
		assert.Equal(t, 400, env.HTTPStatus)
		assert.JSONEq(t, `"3"`, string(env.Extra["available"]))
	})

	t.Run("field errors survive", func(t *testing.T) {
		apiErr := &client.APIError{
			StatusCode: 400,
			Fields:     map[string][]string{"phone": {"This field is required."}},
		}
		env := classifyToolError(apiErr)
		assert.Equal(t, []string{"This field is required."}, env.Fields["phone"])
	})

	t.Run("unreachable server", func(t *testing.T) {
		env := classifyToolError(fmt.Errorf("dial tcp: %w", client.ErrUnavailable))
		assert.Equal(t, "server_unavailable", env.ErrorCode)
	})

	t.Run("expired session", func(t *testing.T) {
		env := classifyToolError(fmt.Errorf("refresh: %w", client.ErrUnauthorized))
		assert.Equal(t, "unauthorized", env.ErrorCode)
	})

	t.Run("plain error", func(t *testing.T) {
		env := classifyToolError(errors.New("customer_id is required"))
		assert.Equal(t, "tool_error", env.ErrorCode)
		assert.Equal(t, "customer_id is required", env.Detail)
	})
}

func TestToolError_ErrorIsJSON(t *testing.T) {
	err := toolError{Envelope: toolErrorEnvelope{ErrorCode: "unauthorized", Detail: "session expired"}}

	var decoded struct {
		Error toolErrorEnvelope `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(err.Error()), &decoded))
	assert.Equal(t, "unauthorized", decoded.Error.ErrorCode)
	assert.Equal(t, "session expired", decoded.Error.Detail)
}

func TestWithToolGuards(t *testing.T) {
	type in struct{}
	type out struct {
		Value string `json:"value"`
	}

	t.Run("passes success through", func(t *testing.T) {
		s := newTestServer(&fakeUpstream{})
		h := withToolGuards(s, func(context.Context, *mcpsdk.CallToolRequest, in) (*mcpsdk.CallToolResult, out, error) {
			return nil, out{Value: "ok"}, nil
		})

		_, got, err := h(context.Background(), nil, in{})
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Value)
	})

	t.Run("wraps handler errors into envelopes", func(t *testing.T) {
		s := newTestServer(&fakeUpstream{})
		h := withToolGuards(s, func(context.Context, *mcpsdk.CallToolRequest, in) (*mcpsdk.CallToolResult, out, error) {
			return nil, out{}, fmt.Errorf("boom: %w", client.ErrUnavailable)
		})

		_, _, err := h(context.Background(), nil, in{})
		require.Error(t, err)

		var te toolError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "server_unavailable", te.Envelope.ErrorCode)
	})

	t.Run("rate limit failure is reported as rate_limited", func(t *testing.T) {
		s := &server{
			log: logging.NewNoopLogger(),
			// Zero-burst limiter: Wait can never succeed.
			limiter: rate.NewLimiter(rate.Limit(1), 0),
		}
		h := withToolGuards(s, func(context.Context, *mcpsdk.CallToolRequest, in) (*mcpsdk.CallToolResult, out, error) {
			t.Fatal("handler must not run")
			return nil, out{}, nil
		})

		_, _, err := h(context.Background(), nil, in{})
		require.Error(t, err)

		var te toolError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "rate_limited", te.Envelope.ErrorCode)
	})
}
