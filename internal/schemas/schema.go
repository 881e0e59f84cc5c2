// Package schemas declares the exact shape of every AI-bound exchange.
// Each schema is declarative data: the same declaration drives the outbound
// response-schema hint sent to the model and the inbound validation of its
// reply, keeping the contract single-sourced.
package schemas

import (
	"github.com/google/generative-ai-go/genai"
)

// FieldType enumerates the value kinds a schema field can declare.
type FieldType string

// Field type constants.
const (
	TypeString      FieldType = "string"
	TypeInteger     FieldType = "integer"
	TypeStringArray FieldType = "[]string"
	TypeObject      FieldType = "object"
	TypeObjectArray FieldType = "[]object"
)

// Field declares a single named field of a schema.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	// Properties holds nested fields for TypeObject and TypeObjectArray.
	Properties []Field
	// Minimum/Maximum bound TypeInteger values; both nil means unbounded.
	Minimum *int
	Maximum *int
	// MinItems/MaxItems bound array lengths; zero means unbounded.
	MinItems int
	MaxItems int
}

// Schema declares a complete AI exchange shape. Root is an object unless
// Array is set, in which case the document is the array the Items field
// declares (including its item bounds).
type Schema struct {
	Name   string
	Fields []Field
	Array  bool
	Items  *Field
}

// Str declares a required string field.
func Str(name, desc string) Field {
	return Field{Name: name, Type: TypeString, Description: desc, Required: true}
}

// StrList declares a required array-of-string field.
func StrList(name, desc string) Field {
	return Field{Name: name, Type: TypeStringArray, Description: desc, Required: true}
}

// Score declares a required integer field bounded to [0,100].
func Score(name, desc string) Field {
	lo, hi := 0, 100
	return Field{Name: name, Type: TypeInteger, Description: desc, Required: true, Minimum: &lo, Maximum: &hi}
}

// Obj declares a required nested object field.
func Obj(name, desc string, props ...Field) Field {
	return Field{Name: name, Type: TypeObject, Description: desc, Required: true, Properties: props}
}

// ObjList declares a required array-of-object field.
func ObjList(name, desc string, props ...Field) Field {
	return Field{Name: name, Type: TypeObjectArray, Description: desc, Required: true, Properties: props}
}

// Optional marks a field as not required.
func Optional(f Field) Field {
	f.Required = false
	return f
}

// GenAI compiles the schema into the response-schema hint for the Gemini
// API. The hint is advisory only; inbound replies are still validated
// locally (the service may not enforce the schema strictly in all modes).
func (s *Schema) GenAI() *genai.Schema {
	if s.Array {
		return fieldToGenAI(*s.Items)
	}
	return objectToGenAI(s.Fields)
}

func objectToGenAI(fields []Field) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	var required []string
	for _, f := range fields {
		props[f.Name] = fieldToGenAI(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   required,
	}
}

func fieldToGenAI(f Field) *genai.Schema {
	switch f.Type {
	case TypeString:
		return &genai.Schema{Type: genai.TypeString, Description: f.Description}
	case TypeInteger:
		desc := f.Description
		if f.Minimum != nil && f.Maximum != nil && desc == "" {
			desc = "An integer score."
		}
		return &genai.Schema{Type: genai.TypeInteger, Description: desc}
	case TypeStringArray:
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: f.Description,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	case TypeObject:
		obj := objectToGenAI(f.Properties)
		obj.Description = f.Description
		return obj
	case TypeObjectArray:
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: f.Description,
			Items:       objectToGenAI(f.Properties),
		}
	default:
		return &genai.Schema{Type: genai.TypeString, Description: f.Description}
	}
}

// JSONSchema compiles the schema into a draft JSON Schema document used for
// inbound validation.
func (s *Schema) JSONSchema() map[string]any {
	if s.Array {
		return fieldToJSONSchema(*s.Items)
	}
	return objectToJSONSchema(s.Fields)
}

func objectToJSONSchema(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldToJSONSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func fieldToJSONSchema(f Field) map[string]any {
	switch f.Type {
	case TypeString:
		return map[string]any{"type": "string"}
	case TypeInteger:
		doc := map[string]any{"type": "integer"}
		if f.Minimum != nil {
			doc["minimum"] = *f.Minimum
		}
		if f.Maximum != nil {
			doc["maximum"] = *f.Maximum
		}
		return doc
	case TypeStringArray:
		doc := map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
		if f.MinItems > 0 {
			doc["minItems"] = f.MinItems
		}
		if f.MaxItems > 0 {
			doc["maxItems"] = f.MaxItems
		}
		return doc
	case TypeObject:
		return objectToJSONSchema(f.Properties)
	case TypeObjectArray:
		doc := map[string]any{
			"type":  "array",
			"items": objectToJSONSchema(f.Properties),
		}
		if f.MinItems > 0 {
			doc["minItems"] = f.MinItems
		}
		if f.MaxItems > 0 {
			doc["maxItems"] = f.MaxItems
		}
		return doc
	default:
		return map[string]any{"type": "string"}
	}
}
