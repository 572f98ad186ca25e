package toolbox

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// entry is a registered tool together with its compiled schema and the
// handler wrapped in the ToolBox middleware.
type entry struct {
	tool    Tool
	schema  *jsonschema.Resolved
	handler Handler
}

// ToolBox orchestrates a collection of tools. It allows registering, retrieving,
// listing, and calling tools. Servers use ToolBox as their dispatcher.
type ToolBox struct {
	tools      map[string]entry
	middleware []Middleware
}

// Option configures a ToolBox.
type Option func(*ToolBox)

// WithMiddleware appends middleware applied around every tool handler. The
// first middleware given is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(tb *ToolBox) {
		tb.middleware = append(tb.middleware, mw...)
	}
}

// New creates a new ToolBox ready for use.
func New(opts ...Option) *ToolBox {
	tb := &ToolBox{
		tools: make(map[string]entry),
	}

	for _, opt := range opts {
		opt(tb)
	}

	return tb
}

// Register adds one or more tools to the ToolBox. If a tool with the same name
// already exists, it is replaced. Register panics if a tool's InputSchema is
// not a valid JSON Schema, since schemas are fixed at build time.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		schema, err := compileSchema(t.InputSchema)
		if err != nil {
			panic(fmt.Sprintf("toolbox: tool %q: %v", t.Name, err))
		}

		tb.tools[t.Name] = entry{
			tool:    t,
			schema:  schema,
			handler: tb.wrap(t.Name, t.Handler),
		}
	}
}

// wrap applies Recovery innermost, then the ToolBox middleware.
func (tb *ToolBox) wrap(name string, h Handler) Handler {
	h = Recovery()(name, h)

	for i := len(tb.middleware) - 1; i >= 0; i-- {
		h = tb.middleware[i](name, h)
	}

	return h
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	e, ok := tb.tools[name]
	return e.tool, ok
}

// Merge registers all tools from another ToolBox into this one. If a tool
// with the same name already exists, it is replaced. Merged tools are
// re-wrapped with this ToolBox's middleware.
func (tb *ToolBox) Merge(other *ToolBox) {
	for _, e := range other.tools {
		tb.tools[e.tool.Name] = entry{
			tool:    e.tool,
			schema:  e.schema,
			handler: tb.wrap(e.tool.Name, e.tool.Handler),
		}
	}
}

// Filter returns a ToolBox holding only the named tools. Unknown names are
// skipped. An empty list returns tb itself.
func (tb *ToolBox) Filter(names []string) *ToolBox {
	if len(names) == 0 {
		return tb
	}

	filtered := &ToolBox{
		tools:      make(map[string]entry, len(names)),
		middleware: tb.middleware,
	}

	for _, name := range names {
		if e, ok := tb.tools[name]; ok {
			filtered.tools[name] = e
		}
	}

	return filtered
}

// Tools returns all registered tools sorted by name.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, e := range tb.tools {
		result = append(result, e.tool)
	}

	slices.SortFunc(result, func(a, b Tool) int { return cmp.Compare(a.Name, b.Name) })

	return result
}

// Call executes a tool call and returns a ToolResult. Unknown tools and
// arguments that fail the tool's schema are rejected before the handler runs.
// Handler errors and panics never escape: they are reported with
// IsError set and a Category.
func (tb *ToolBox) Call(ctx context.Context, tc ToolCall) ToolResult {
	e, ok := tb.tools[tc.Name]
	if !ok {
		return failure(tc, InvalidRequest("tool not found: %s", tc.Name))
	}

	input := normalizeInput(tc.Arguments)

	if err := validateInput(e.schema, input); err != nil {
		return failure(tc, err)
	}

	result, err := e.handler(ctx, input)
	if err != nil {
		return failure(tc, err)
	}

	return ToolResult{
		ToolCallID: tc.ID,
		Content:    result,
	}
}

func failure(tc ToolCall, err error) ToolResult {
	return ToolResult{
		ToolCallID: tc.ID,
		Content:    err.Error(),
		IsError:    true,
		Category:   CategoryOf(err),
	}
}
