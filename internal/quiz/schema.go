package quiz

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const payloadSchemaURL = "schema://cheesequiz/payload.json"

// payloadSchema accepts both wire shapes: an array whose first element is a
// question object, or a single (legacy) question object carrying an ok flag.
// Only the first array element is ever read, so later elements are not
// checked. Unknown fields are allowed so endpoints can attach their own
// metadata.
const payloadSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "strings": {"type": "array", "items": {"type": ["string", "null"]}},
    "index": {"type": ["integer", "string", "null"]},
    "question": {
      "type": "object",
      "properties": {
        "ok": {"type": "boolean"},
        "id": {"type": ["string", "number", "null"]},
        "question": {"type": ["string", "null"]},
        "questionText": {"type": ["string", "null"]},
        "choiceObjects": {
          "type": "array",
          "items": {
            "type": ["object", "null"],
            "properties": {
              "text": {"type": ["string", "null"]},
              "imageUrl": {"type": ["string", "null"]}
            }
          }
        },
        "choices": {"$ref": "#/$defs/strings"},
        "choiceImageUrls": {"$ref": "#/$defs/strings"},
        "images": {"$ref": "#/$defs/strings"},
        "correctIndex": {"$ref": "#/$defs/index"},
        "answer": {"$ref": "#/$defs/index"},
        "explanation": {"type": ["string", "null"]},
        "difficulty": {"type": ["string", "null"]}
      }
    }
  },
  "anyOf": [
    {"type": "array", "prefixItems": [{"$ref": "#/$defs/question"}]},
    {"$ref": "#/$defs/question"}
  ]
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func payloadValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(payloadSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse payload schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(payloadSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add payload schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(payloadSchemaURL)
	})
	return compiledSchema, compileErr
}

// ValidatePayload checks raw against the payload schema. It returns a
// *ParseError when raw is not JSON or does not match either wire shape.
func ValidatePayload(raw []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ParseError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := payloadValidator()
	if err != nil {
		return &ParseError{Err: err}
	}
	if err := sch.Validate(inst); err != nil {
		return &ParseError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
