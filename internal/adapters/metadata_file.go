package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"release-metadata/internal/jsonutil"
	"release-metadata/internal/ports"
	"release-metadata/internal/shared"
)

type MetadataFileAdapter struct{}

func NewMetadataFileAdapter() MetadataFileAdapter {
	return MetadataFileAdapter{}
}

func (a MetadataFileAdapter) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (a MetadataFileAdapter) Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("metadata file not found: " + path).
				WithCause(err)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read metadata file: " + path).
			WithCause(err)
	}

	var document any
	format := shared.FileFormat(path)
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &document)
	case "toml":
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		document = plainTOML(table)
	default:
		err = json.Unmarshal(data, &document)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse metadata " + format + ": " + path).
			WithCause(err)
	}

	obj, ok := jsonutil.AsObject(document)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata file must contain an object, got " + jsonutil.KindOf(document).String() + ": " + path)
	}
	return obj, nil
}

// plainTOML rewrites the typed collections the toml decoder produces for
// arrays of tables into the []any and map[string]any shapes of decoded JSON.
func plainTOML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = plainTOML(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainTOML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainTOML(item)
		}
		return out
	default:
		return v
	}
}

func (a MetadataFileAdapter) Save(path string, value any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(value, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode release metadata").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metadata directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metadata file: " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.MetadataFilePort = MetadataFileAdapter{}
