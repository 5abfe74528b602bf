package vocab

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const readingSchema = `{
	"type": "object",
	"required": ["hiragana", "katakana"],
	"additionalProperties": false,
	"properties": {
		"hiragana": {"type": "string"},
		"katakana": {"type": "string"}
	}
}`

// Version 1 of the kana dataset. Entries that still use the legacy "word"
// field are rejected.
var kanaSchema = `{
	"type": "object",
	"required": ["kanaAssociations"],
	"additionalProperties": false,
	"properties": {
		"version": {"const": 1},
		"kanaAssociations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["emoji", "description", "kana"],
				"additionalProperties": false,
				"properties": {
					"emoji": {"type": "string"},
					"description": {"type": "string"},
					"kana": ` + readingSchema + `
				}
			}
		}
	}
}`

// Version 1 of the food dataset.
var foodSchema = `{
	"type": "object",
	"required": ["kanaEntries"],
	"additionalProperties": false,
	"properties": {
		"version": {"const": 1},
		"kanaEntries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["emoji", "foodsentence1", "foodsentence2", "kana"],
				"additionalProperties": false,
				"properties": {
					"emoji": {"type": "string"},
					"foodsentence1": {"type": "string"},
					"foodsentence2": {"type": "string"},
					"kana": ` + readingSchema + `
				}
			}
		}
	}
}`

var schemaDefs = map[Dataset]string{
	KanaDataset: kanaSchema,
	FoodDataset: foodSchema,
}

// schemaCache caches compiled schemas by dataset.
var schemaCache sync.Map // map[Dataset]*jsonschema.Schema

// validate checks raw against the schema of the given dataset.
func validate(ds Dataset, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(ds)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", ds, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(ds Dataset) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(ds); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefs[ds]
	if !ok {
		return nil, fmt.Errorf("no schema for dataset %q", ds)
	}
	var defParsed any
	if err := json.Unmarshal([]byte(def), &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://kanaz/%s.v1.json", ds)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(ds, compiled)
	return compiled, nil
}
