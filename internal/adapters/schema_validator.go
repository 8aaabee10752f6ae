package adapters

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"release-metadata/internal/ports"
)

var (
	//go:embed schema/release-metadata.schema.json
	fullSchema []byte

	//go:embed schema/secure-release-metadata.schema.json
	secureSchema []byte
)

// SchemaValidatorAdapter validates documents against the embedded release
// metadata schemas.
type SchemaValidatorAdapter struct{}

func NewSchemaValidatorAdapter() SchemaValidatorAdapter {
	return SchemaValidatorAdapter{}
}

func (a SchemaValidatorAdapter) Validate(ctx context.Context, document []byte, secure bool) ([]string, error) {
	schema := fullSchema
	if secure {
		schema = secureSchema
	}
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to validate release metadata").
			WithCause(err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	log.Ctx(ctx).Debug().Int("violations", len(violations)).Bool("secure", secure).Msg("schema validation failed")
	return violations, nil
}

var _ ports.SchemaValidatorPort = SchemaValidatorAdapter{}
