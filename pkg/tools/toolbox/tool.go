package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON input and returns its result.
// A successful result is a JSON document. Input reaching a Handler through
// ToolBox.Call has already been validated against the tool's InputSchema.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool represents an executable tool with a name, description, JSON Schema, and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ToolCall is a request to invoke a named tool with JSON arguments.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolResult holds the outcome of a tool invocation. When IsError is set,
// Content is the failure message and Category classifies it.
type ToolResult struct {
	ToolCallID string
	Content    string
	IsError    bool
	Category   Category
}
