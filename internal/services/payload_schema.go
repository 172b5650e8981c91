package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
)

const payloadSchemaURL = "schema://risk-inputs.json"

// payloadSchemaDefinition only constrains value types of the known keys.
// There are no range constraints; out-of-range values are scored as-is.
func payloadSchemaDefinition() map[string]any {
	scalar := map[string]any{"type": []any{"number", "boolean"}}
	properties := make(map[string]any, len(domain.Fields))
	for _, f := range domain.Fields {
		properties[f] = scalar
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *jsonschema.Schema
	payloadSchemaErr  error
)

func compiledPayloadSchema() (*jsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON document, not Go-typed literals.
		raw, err := json.Marshal(payloadSchemaDefinition())
		if err != nil {
			payloadSchemaErr = fmt.Errorf("marshal payload schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			payloadSchemaErr = fmt.Errorf("parse payload schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(payloadSchemaURL, doc); err != nil {
			payloadSchemaErr = fmt.Errorf("add payload schema: %w", err)
			return
		}
		payloadSchema, payloadSchemaErr = c.Compile(payloadSchemaURL)
	})
	return payloadSchema, payloadSchemaErr
}

// validatePayloadTypes returns a client-readable message describing the first
// offending fields, or "" when the payload is acceptable.
func validatePayloadTypes(payload map[string]any) (string, error) {
	schema, err := compiledPayloadSchema()
	if err != nil {
		return "", err
	}
	if err := schema.Validate(payload); err != nil {
		return describeSchemaError(err), nil
	}
	return "", nil
}

// describeSchemaError drops the validator's header line and joins the
// per-location causes into a single line.
func describeSchemaError(err error) string {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
