package store

import (
	"fmt"
	"strings"

	"visa-bot/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema is the shape of the documents RedisStore writes; documents
// read back must match it before they are decoded.
var recordSchema = mustCompile(recordSchemaDoc())

func recordSchemaDoc() map[string]interface{} {
	fields := make([]interface{}, 0, len(models.FormSteps))
	for _, step := range models.FormSteps {
		if field, ok := step.Field(); ok {
			fields = append(fields, string(field))
		}
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"identity", "step", "answers"},
		"properties": map[string]interface{}{
			"identity": map[string]interface{}{"type": "integer"},
			"step": map[string]interface{}{
				"type":    "integer",
				"minimum": int(models.StepInactive),
				"maximum": int(models.StepPhotoFile),
			},
			"answers": map[string]interface{}{
				"type":                 []interface{}{"object", "null"},
				"propertyNames":        map[string]interface{}{"enum": fields},
				"additionalProperties": map[string]interface{}{"type": "string"},
			},
		},
	}
}

func mustCompile(doc map[string]interface{}) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("store: invalid record schema: %v", err))
	}
	return schema
}

// validateDocument checks a stored document before it is decoded.
func validateDocument(data []byte) error {
	result, err := recordSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("record validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
