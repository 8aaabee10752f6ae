package ports

import "context"

// SchemaValidatorPort checks a raw document against the published JSON
// schema for release metadata.
type SchemaValidatorPort interface {
	// Validate returns the list of violations; an empty list means the
	// document is valid. secure selects the redacted document schema.
	Validate(ctx context.Context, document []byte, secure bool) ([]string, error)
}
