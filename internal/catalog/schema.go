package catalog

import (
	"embed"
	"sync"

	"github.com/osse101/vstore/internal/validation"
)

// SchemaFile is the embedded schema store-assets documents are checked against
const SchemaFile = "schema/store_assets.schema.json"

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemaOnce      sync.Once
	schemaValidator validation.SchemaValidator
)

// ValidateDocument checks raw store-assets JSON against the embedded schema
func ValidateDocument(data []byte) error {
	schemaOnce.Do(func() {
		schemaValidator = validation.NewSchemaValidator(schemaFS)
	})
	return schemaValidator.ValidateBytes(data, SchemaFile)
}
