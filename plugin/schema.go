package plugin

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aledsdavies/fjson/value"
)

// SchemaValidator is a ready-made Validate hook wired to
// github.com/santhosh-tekuri/jsonschema/v5 (spec §4.8, "schema validation
// as a pluggable, not core, concern"). It validates only the document
// root (path "$") — per-node JSON Schema validation isn't a coherent
// concept (a schema describes the whole instance, not an isolated
// subtree), so every other path is a no-op.
type SchemaValidator struct {
	name   string
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles schemaJSON and returns a SchemaValidator
// plugin named name.
func NewSchemaValidator(name, schemaJSON string) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	resourceName := name + ".json"
	if err := compiler.AddResource(resourceName, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("compiling schema for plugin %q: %w", name, err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema for plugin %q: %w", name, err)
	}
	return &SchemaValidator{name: name, schema: schema}, nil
}

// Name implements Plugin.
func (s *SchemaValidator) Name() string { return s.name }

// Validate implements Validate, running jsonschema.Schema.Validate against
// the whole document once, at the root.
func (s *SchemaValidator) Validate(v *value.Value, path string) error {
	if path != "$" {
		return nil
	}
	return s.schema.Validate(toInterface(v))
}

// toInterface converts a Value tree into the plain interface{} shape
// encoding/json-like libraries expect (map[string]interface{},
// []interface{}, string, float64, bool, nil), the shape
// jsonschema.Schema.Validate requires as its document argument.
func toInterface(v *value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.Bool()
		return b
	case value.KindInteger:
		n, _ := v.Int()
		return float64(n)
	case value.KindFloat:
		f, _ := v.Float()
		return f
	case value.KindString:
		s, _ := v.Str()
		return s
	case value.KindArray:
		arr, _ := v.Array()
		out := make([]interface{}, len(arr))
		for i, el := range arr {
			out[i] = toInterface(el)
		}
		return out
	case value.KindObject:
		obj, _ := v.Object()
		out := make(map[string]interface{}, obj.Len())
		for _, e := range obj.Entries() {
			out[e.Key] = toInterface(e.Value)
		}
		return out
	default:
		return nil
	}
}
