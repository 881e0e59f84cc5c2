package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// MismatchError reports a response that does not conform to its declared
// schema. Field is the path of the first missing or mismatched field.
type MismatchError struct {
	Schema  string
	Field   string
	Message string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("schema mismatch for %s at %s: %s", e.Schema, e.Field, e.Message)
}

// LoadError reports a schema that could not be compiled for validation.
type LoadError struct {
	Schema string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Validate checks a raw JSON document against the schema. Returns a
// *MismatchError describing the first failing field, or nil when the
// document conforms. Out-of-range integer scores are rejected here rather
// than clamped: clamping would mask a prompting regression.
func (s *Schema) Validate(document []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(s.JSONSchema())
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// gojsonschema returns an error here for malformed documents as
		// well as uncompilable schemas; surface both as a mismatch on the
		// document root so callers treat it as a bad response.
		return &MismatchError{
			Schema:  s.Name,
			Field:   "(root)",
			Message: err.Error(),
		}
	}

	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "" {
		field = "(root)"
	}
	return &MismatchError{
		Schema:  s.Name,
		Field:   field,
		Message: first.Description(),
	}
}

// Decode validates the document and, on success, unmarshals it into v.
func (s *Schema) Decode(document []byte, v any) error {
	if err := s.Validate(document); err != nil {
		return err
	}
	if err := json.Unmarshal(document, v); err != nil {
		return &MismatchError{
			Schema:  s.Name,
			Field:   "(root)",
			Message: fmt.Sprintf("failed to decode validated document: %v", err),
		}
	}
	return nil
}
