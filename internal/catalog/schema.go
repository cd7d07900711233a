package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// actionItemSchema is the upstream payload contract for POST /action-items.
// The MCP input schema is flat and cannot express the conditional part:
// ActionTypeId 2 requires a CostChange object, 3 a ScheduleChange object,
// and 1 allows neither.
const actionItemSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["ProjectId", "ActionTypeId", "Title"],
	"properties": {
		"ProjectId": {"type": "string", "minLength": 1},
		"ActionTypeId": {"type": "integer", "enum": [1, 2, 3]},
		"Title": {"type": "string", "minLength": 1},
		"Description": {"type": "string"},
		"CostChange": {
			"type": "object",
			"required": ["amount"],
			"properties": {
				"amount": {"type": "number"},
				"reason": {"type": "string"}
			},
			"additionalProperties": false
		},
		"ScheduleChange": {
			"type": "object",
			"required": ["days"],
			"properties": {
				"days": {"type": "number"},
				"reason": {"type": "string"}
			},
			"additionalProperties": false
		}
	},
	"allOf": [
		{
			"if": {"properties": {"ActionTypeId": {"const": 2}}},
			"then": {"required": ["CostChange"]}
		},
		{
			"if": {"properties": {"ActionTypeId": {"const": 3}}},
			"then": {"required": ["ScheduleChange"]}
		},
		{
			"if": {"properties": {"ActionTypeId": {"const": 1}}},
			"then": {
				"not": {
					"anyOf": [
						{"required": ["CostChange"]},
						{"required": ["ScheduleChange"]}
					]
				}
			}
		}
	],
	"additionalProperties": false
}`

var (
	actionItemSchemaOnce     sync.Once
	actionItemSchemaCompiled *gojsonschema.Schema
	actionItemSchemaErr      error
)

// validateActionItemPayload checks the composed payload against the
// action-item schema. Violations come back as one error listing every
// schema failure; no upstream call should be made when it is non-nil.
func validateActionItemPayload(payload map[string]any) error {
	actionItemSchemaOnce.Do(func() {
		actionItemSchemaCompiled, actionItemSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(actionItemSchema))
	})
	if actionItemSchemaErr != nil {
		return fmt.Errorf("schema compilation failed: %w", actionItemSchemaErr)
	}

	result, err := actionItemSchemaCompiled.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(errs, ", "))
}
