package ports

// MetadataFilePort reads and writes persisted release metadata documents.
type MetadataFilePort interface {
	// Exists reports whether path names an existing file.
	Exists(path string) bool

	// Load decodes path into an untyped JSON object. The decoder is chosen
	// from the file extension (JSON, YAML or TOML).
	Load(path string) (map[string]any, error)

	// Save writes value as JSON, compact unless pretty is set.
	Save(path string, value any, pretty bool) error
}
