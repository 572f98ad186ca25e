package toolbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolHandlerDecodesInput(t *testing.T) {
	tool := pairTool(func(_ context.Context, input json.RawMessage) (string, error) {
		var in struct {
			A float64 `json:"a"`
			B float64 `json:"b"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", InvalidRequest("bad input: %v", err)
		}
		out, err := json.Marshal(map[string]float64{"result": in.A - in.B})
		return string(out), err
	})

	result, err := tool.Handler(context.Background(), json.RawMessage(`{"a":5,"b":7.5}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":-2.5}`, result)
}

func TestToolCallArgumentsRoundTrip(t *testing.T) {
	var tc ToolCall
	require.NoError(t, json.Unmarshal([]byte(`{"ID":"7","Name":"pair","Arguments":{"a":1,"b":2}}`), &tc))

	assert.Equal(t, "7", tc.ID)
	assert.Equal(t, "pair", tc.Name)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(tc.Arguments))
}

func TestToolResultZeroValueIsSuccess(t *testing.T) {
	var res ToolResult

	assert.False(t, res.IsError)
	assert.Empty(t, res.Category)
}
