package maps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "map.schema.json"

const mapSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "size": {
      "type": "object",
      "additionalProperties": false,
      "required": ["width", "height"],
      "properties": {
        "width":  {"type": "integer", "minimum": 1},
        "height": {"type": "integer", "minimum": 1}
      }
    },
    "walls": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["x", "y", "length", "orientation"],
        "properties": {
          "x":      {"type": "integer"},
          "y":      {"type": "integer"},
          "length": {"type": "integer"},
          "orientation": {
            "type": "string",
            "pattern": "^(?i)(horizontal|vertical)$"
          }
        }
      }
    },
    "beepers": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["x", "y", "count"],
        "properties": {
          "x": {"type": "integer"},
          "y": {"type": "integer"},
          "count": {
            "oneOf": [
              {"type": "integer"},
              {"type": "string", "pattern": "^(?i)(infinite|infinity|unbounded)$"}
            ]
          }
        }
      }
    },
    "robots": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["x", "y", "direction", "beepers"],
        "properties": {
          "x":         {"type": "integer"},
          "y":         {"type": "integer"},
          "direction": {"type": "integer", "minimum": 0, "maximum": 3},
          "beepers": {
            "oneOf": [
              {"type": "integer"},
              {"type": "string", "pattern": "^(?i)(infinite|infinity|unbounded)$"}
            ]
          }
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, mapSchema)
})

// validate checks a decoded YAML document against the map schema. The document
// is round-tripped through JSON so numbers reach the validator as json.Number.
func validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile map schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode map for validation: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode map for validation: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid map: %w", err)
	}
	return nil
}
