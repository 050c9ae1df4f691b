package chatbot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	genai "google.golang.org/genai"
)

// JSON Schema types
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema is the subset of JSON Schema used to describe tool and flow inputs and outputs.
// Unknown object properties are accepted and ignored.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
	Enum        []string
	Minimum     *float64
	Maximum     *float64
}

func float(f float64) *float64 {
	return &f
}

// Map returns s as a standard JSON Schema document. Object schemas always carry
// "properties" and "required", even when empty, which OpenAI-style APIs expect.
func (s *Schema) Map() map[string]interface{} {
	m := map[string]interface{}{"type": s.Type}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Type == TypeObject {
		props := make(map[string]interface{}, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.Map()
		}
		m["properties"] = props
		required := s.Required
		if required == nil {
			required = []string{}
		}
		m["required"] = required
	}
	if s.Items != nil {
		m["items"] = s.Items.Map()
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	return m
}

// MarshalJSON encodes s as a JSON Schema document
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// Genai returns s as a Gemini function-declaration schema
func (s *Schema) Genai() *genai.Schema {
	g := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(s.Type)),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
	if len(s.Properties) > 0 {
		g.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			g.Properties[name] = p.Genai()
		}
	}
	if s.Items != nil {
		g.Items = s.Items.Genai()
	}
	return g
}

// SchemaError describes the first value that failed validation
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Validate checks a decoded JSON value (as produced by encoding/json into interface{}) against s
func (s *Schema) Validate(value interface{}) error {
	return s.validate("$", value)
}

// ValidateJSON decodes data and validates it against s
func (s *Schema) ValidateJSON(data []byte) error {
	var v interface{}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return &SchemaError{Path: "$", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return s.Validate(v)
}

func (s *Schema) validate(path string, value interface{}) error {
	switch s.Type {
	case TypeObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return &SchemaError{Path: path, Reason: "expected object, got " + jsonType(value)}
		}
		for _, name := range s.Required {
			if _, ok := obj[name]; !ok {
				return &SchemaError{Path: path + "." + name, Reason: "is required"}
			}
		}
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v, ok := obj[name]
			if !ok {
				continue
			}
			if err := s.Properties[name].validate(path+"."+name, v); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := value.([]interface{})
		if !ok {
			return &SchemaError{Path: path, Reason: "expected array, got " + jsonType(value)}
		}
		if s.Items != nil {
			for i, v := range arr {
				if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), v); err != nil {
					return err
				}
			}
		}
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return &SchemaError{Path: path, Reason: "expected string, got " + jsonType(value)}
		}
		if len(s.Enum) > 0 {
			for _, e := range s.Enum {
				if str == e {
					return nil
				}
			}
			return &SchemaError{Path: path, Reason: fmt.Sprintf("%q is not one of %v", str, s.Enum)}
		}
	case TypeNumber, TypeInteger:
		f, ok := number(value)
		if !ok {
			return &SchemaError{Path: path, Reason: "expected number, got " + jsonType(value)}
		}
		if s.Type == TypeInteger && f != math.Trunc(f) {
			return &SchemaError{Path: path, Reason: "expected integer"}
		}
		if s.Minimum != nil && f < *s.Minimum {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("%v is less than minimum %v", f, *s.Minimum)}
		}
		if s.Maximum != nil && f > *s.Maximum {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("%v is greater than maximum %v", f, *s.Maximum)}
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return &SchemaError{Path: path, Reason: "expected boolean, got " + jsonType(value)}
		}
	default:
		return &SchemaError{Path: path, Reason: fmt.Sprintf("unknown schema type %q", s.Type)}
	}
	return nil
}

func number(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func jsonType(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return TypeObject
	case []interface{}:
		return TypeArray
	case string:
		return TypeString
	case float64, json.Number:
		return TypeNumber
	case bool:
		return TypeBoolean
	}
	return fmt.Sprintf("%T", value)
}

// DecodeInput validates data against schema and decodes it into v.
// Any failure is a validation Error, so callers can reject input before any model call.
func DecodeInput(data []byte, schema *Schema, v interface{}) error {
	if err := schema.ValidateJSON(data); err != nil {
		return &Error{Kind: ErrorKindValidation, Description: "Could not validate input", Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Kind: ErrorKindValidation, Description: "Could not decode input", Err: err}
	}
	return nil
}
