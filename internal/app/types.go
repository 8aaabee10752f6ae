package app

import (
	"context"

	"release-metadata/internal/types"
)

// ApplicationFunc produces the processed metadata an application exposes. It
// reads the metadata file again on every call.
type ApplicationFunc func(ctx context.Context) (types.ProcessedMetadata, error)

type GenerateRequest struct {
	Path string
	// Save forces saving (true) or printing (false). When nil, a non-empty
	// Path implies saving.
	Save               *bool
	Merge              string
	MergeFromPath      bool
	MergeOriginal      string
	MergeOverlay       string
	Branch             string
	Remote             string
	NoGit              bool
	Secure             bool
	SecureIfProduction bool
	OmitRepoURL        bool
	ReleaseName        string
	Timestamp          string
}

type GenerateResult struct {
	Path     string
	Saved    bool
	Metadata types.ProcessedMetadata
	// Output is the pretty-printed document when it was not saved.
	Output []byte
}

type ValidateRequest struct {
	Path   string
	Secure bool
}

type ValidateResult struct {
	Path       string
	Violations []string
	Metadata   *types.ReleaseMetadata
}

type ShowRequest struct {
	Path        string
	Insecure    bool
	OmitRepoURL bool
	RequireFile bool
}

type ShowResult struct {
	Path     string
	Metadata types.ProcessedMetadata
	Output   []byte
}
