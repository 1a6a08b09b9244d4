package persistence

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema constrains the deserialized JSON shape before any
// semantic check (version, fingerprint) runs, so a malformed or
// truncated snapshot is rejected with a structural error rather than
// a confusing downstream panic or zero-valued field.
const envelopeSchema = `{
	"type": "object",
	"required": ["version", "topology_fingerprint", "captured_at", "epoch", "nodes"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"topology_fingerprint": {"type": "string", "minLength": 1},
		"captured_at": {"type": "string"},
		"epoch": {"type": "integer", "minimum": 0},
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "data"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"data": {"type": "string"}
				}
			}
		}
	}
}`

// validateEnvelopeJSON checks raw against envelopeSchema before it is
// unmarshaled into an Envelope.
func validateEnvelopeJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(envelopeSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, result.Errors())
	}
	return nil
}
