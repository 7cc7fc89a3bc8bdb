// Package toolschema builds the JSON Schemas that describe tool parameters and
// validates call arguments against them before a handler runs.
package toolschema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// DatePattern is the accepted calendar date layout (YYYY-MM-DD).
const DatePattern = `^\d{4}-\d{2}-\d{2}$`

// Param describes one tool parameter.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
	Pattern     string
	Enum        []any
}

// Date is a required calendar date parameter.
func Date(name, description string) Param {
	return Param{Name: name, Type: "string", Description: description + " (YYYY-MM-DD)", Required: true, Pattern: DatePattern}
}

// OptionalDate is an optional calendar date parameter.
func OptionalDate(name, description string) Param {
	p := Date(name, description)
	p.Required = false
	return p
}

// String is a required string parameter.
func String(name, description string) Param {
	return Param{Name: name, Type: "string", Description: description, Required: true}
}

// Int is a required integer parameter.
func Int(name, description string) Param {
	return Param{Name: name, Type: "integer", Description: description, Required: true}
}

// Number is a required number parameter.
func Number(name, description string) Param {
	return Param{Name: name, Type: "number", Description: description, Required: true}
}

// Bool is a required boolean parameter.
func Bool(name, description string) Param {
	return Param{Name: name, Type: "boolean", Description: description, Required: true}
}

// Object is a required free-form JSON object parameter.
func Object(name, description string) Param {
	return Param{Name: name, Type: "object", Description: description, Required: true}
}

// Optional returns a copy of p that is not required and defaults to def.
// A nil def leaves the default unset.
func (p Param) Optional(def any) Param {
	p.Required = false
	p.Default = def
	return p
}

// OneOf restricts p to the given values.
func (p Param) OneOf(values ...any) Param {
	p.Enum = values
	return p
}

// Build returns the object schema for the given parameters in order.
func Build(params ...Param) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(params)),
	}

	for _, p := range params {
		if _, dup := s.Properties[p.Name]; dup {
			return nil, fmt.Errorf("toolschema: duplicate parameter %q", p.Name)
		}

		prop := &jsonschema.Schema{
			Type:        p.Type,
			Description: p.Description,
			Pattern:     p.Pattern,
			Enum:        p.Enum,
		}
		if p.Default != nil {
			raw, err := json.Marshal(p.Default)
			if err != nil {
				return nil, fmt.Errorf("toolschema: default for %q: %w", p.Name, err)
			}
			prop.Default = raw
		}

		s.Properties[p.Name] = prop
		s.PropertyOrder = append(s.PropertyOrder, p.Name)
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}

	return s, nil
}

// MustJSON builds and marshals the schema. It panics on error and is meant for
// tool tables defined at construction time.
func MustJSON(params ...Param) json.RawMessage {
	s, err := Build(params...)
	if err != nil {
		panic(err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Errorf("toolschema: marshal: %w", err))
	}

	return raw
}

// Validator checks call arguments against a resolved schema.
type Validator struct {
	resolved *jsonschema.Resolved
}

// Compile resolves a raw JSON Schema for repeated validation.
func Compile(schema json.RawMessage) (*Validator, error) {
	if len(schema) == 0 {
		schema = json.RawMessage(`{"type":"object"}`)
	}

	var s jsonschema.Schema
	if err := json.Unmarshal(schema, &s); err != nil {
		return nil, fmt.Errorf("toolschema: parse schema: %w", err)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("toolschema: resolve schema: %w", err)
	}

	return &Validator{resolved: resolved}, nil
}

// Validate decodes args and validates them. Empty args validate as {}.
func (v *Validator) Validate(args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	var instance any
	if err := json.Unmarshal(args, &instance); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if err := v.resolved.Validate(instance); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	return nil
}
