package types

import "encoding/json"

// SecureRepoInfo is the redacted description of a repository.
type SecureRepoInfo struct {
	Ref string `json:"ref"`
	URL string `json:"url,omitempty"`
}

// RepoInfo describes one source repository contributing to a release.
// Ref may carry a branch annotation, "<branch> (<hash>)", when the build was
// not made from a main branch.
type RepoInfo struct {
	Ref        string         `json:"ref"`
	URL        string         `json:"url,omitempty"`
	Name       string         `json:"name,omitempty"`
	Type       string         `json:"type"`
	SourcePath string         `json:"source_path"`
	Ext        map[string]any `json:"ext,omitempty"`
}

// PackageInfo describes a runtime or package whose versions matter to a
// release.
type PackageInfo struct {
	Name     string            `json:"name"`
	Versions map[string]string `json:"versions"`
	Ext      map[string]any    `json:"ext,omitempty"`
}

// SecureReleaseMetadata is the subset of ReleaseMetadata that is safe to
// expose outside of the build environment.
type SecureReleaseMetadata struct {
	Name      *string          `json:"name"`
	Timestamp string           `json:"timestamp"`
	Repos     []SecureRepoInfo `json:"repos"`
}

// ReleaseMetadata is the full, unredacted release description.
type ReleaseMetadata struct {
	Name       *string        `json:"name"`
	Timestamp  string         `json:"timestamp"`
	SourcePath string         `json:"source_path"`
	Repos      []RepoInfo     `json:"repos"`
	Packages   []PackageInfo  `json:"packages"`
	Ext        map[string]any `json:"ext,omitempty"`
}

type PartialRepoInfo struct {
	Ref        *string
	URL        *string
	Name       *string
	Type       *string
	SourcePath *string
	Ext        map[string]any
}

type PartialPackageInfo struct {
	Name     *string
	Versions map[string]string
	Ext      map[string]any
}

// PartialReleaseMetadata is the merge intermediate: every field is optional
// and a nil slice means the sequence was not provided at all.
type PartialReleaseMetadata struct {
	Name       *string
	Timestamp  *string
	SourcePath *string
	Repos      []PartialRepoInfo
	Packages   []PartialPackageInfo
	Ext        map[string]any
}

// ProcessedMetadata is the output of the pipeline. Exactly one field is set.
type ProcessedMetadata struct {
	Full     *ReleaseMetadata
	Secure   *SecureReleaseMetadata
	Filtered map[string]any
}

// Value returns whichever view is held.
func (p ProcessedMetadata) Value() any {
	switch {
	case p.Filtered != nil:
		return p.Filtered
	case p.Secure != nil:
		return p.Secure
	case p.Full != nil:
		return p.Full
	default:
		return nil
	}
}

// IsSecure reports whether the held view went through security filtering.
func (p ProcessedMetadata) IsSecure() bool {
	return p.Secure != nil || p.Filtered != nil
}

func (p ProcessedMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

// StringPtr returns a pointer to value.
func StringPtr(value string) *string {
	return &value
}

// BoolPtr returns a pointer to value.
func BoolPtr(value bool) *bool {
	return &value
}
