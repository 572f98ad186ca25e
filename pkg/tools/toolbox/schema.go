package toolbox

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

var emptyObject = json.RawMessage(`{}`)

// compileSchema resolves a tool's JSON Schema so it can be checked on every
// call without re-parsing. A missing schema accepts any object.
func compileSchema(raw json.RawMessage) (*jsonschema.Resolved, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage(`{"type":"object"}`)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	return resolved, nil
}

// validateInput checks input against a compiled schema.
func validateInput(schema *jsonschema.Resolved, input json.RawMessage) error {
	var instance any
	if err := json.Unmarshal(input, &instance); err != nil {
		return InvalidRequest("invalid arguments: %v", err)
	}

	if err := schema.Validate(instance); err != nil {
		return InvalidRequest("invalid arguments: %v", err)
	}

	return nil
}

// normalizeInput maps absent arguments to an empty object.
func normalizeInput(input json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(input)) == 0 || bytes.Equal(bytes.TrimSpace(input), []byte("null")) {
		return emptyObject
	}

	return input
}
