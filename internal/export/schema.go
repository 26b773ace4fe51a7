package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FileName is the sidecar file written under the output directory.
const FileName = "questions.json"

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["build_id", "questions"],
  "properties": {
    "build_id": { "type": "string", "minLength": 1 },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "prompt", "choices"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "source": { "type": "string" },
          "prompt": { "type": "string" },
          "answer": { "type": "string" },
          "choices": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["ordinal", "text", "correct", "feedback"],
              "properties": {
                "ordinal": { "type": "string", "pattern": "^[A-Z]$" },
                "text": { "type": "string" },
                "correct": { "type": "boolean" },
                "feedback": { "type": "string" }
              }
            }
          }
        }
      }
    }
  }
}`

// Validate checks an export payload against the embedded schema.
func Validate(payload Export) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("questions.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("questions.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("decode export: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return fmt.Errorf("validate export: %w", err)
	}
	return nil
}

// Write validates the payload and writes it as indented JSON.
func Write(path string, payload Export) error {
	if payload.Questions == nil {
		payload.Questions = []Question{}
	}
	if err := Validate(payload); err != nil {
		return err
	}
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
