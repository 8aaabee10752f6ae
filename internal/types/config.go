package types

// BranchTestFunc reports whether branch is the designated main branch.
type BranchTestFunc func(branch string) bool

// SecurityFilterFunc post-processes the secure view. It receives the secure
// view and the full metadata it was derived from and may return any JSON
// object.
type SecurityFilterFunc func(secured SecureReleaseMetadata, metadata ReleaseMetadata) map[string]any

type GitOptions struct {
	// Branch names the main branch. Ignored when BranchTest is set.
	Branch     string
	BranchTest BranchTestFunc
	Remote     string
	Enabled    *bool
}

// GitSetting is either unset, a plain toggle, or a GitOptions object.
type GitSetting struct {
	Toggle  *bool
	Options *GitOptions
}

func GitToggle(enabled bool) GitSetting {
	return GitSetting{Toggle: &enabled}
}

func GitWith(options GitOptions) GitSetting {
	return GitSetting{Options: &options}
}

type MergeOptions struct {
	Original map[string]any
	Overlay  map[string]any
}

type SecurityOptions struct {
	Enabled *bool
	// Env restricts security to named runtime environments. It accepts a
	// bool (true means "production"), a single environment name, or a map of
	// environment names to booleans.
	Env         any
	Filter      SecurityFilterFunc
	OmitRepoURL *bool
	RequireFile *bool
}

// SecuritySetting is either unset, a plain toggle, or a SecurityOptions object.
type SecuritySetting struct {
	Toggle  *bool
	Options *SecurityOptions
}

func SecureToggle(enabled bool) SecuritySetting {
	return SecuritySetting{Toggle: &enabled}
}

func SecureWith(options SecurityOptions) SecuritySetting {
	return SecuritySetting{Options: &options}
}

// Options is the sparse configuration accepted from callers. The zero value
// selects every default.
type Options struct {
	Git       GitSetting
	Merge     *MergeOptions
	Secure    SecuritySetting
	Name      *string
	Timestamp string
	Path      string
}

type GitConfig struct {
	BranchTest BranchTestFunc
	Enabled    bool
	Remote     string
}

type MergeConfig struct {
	Original map[string]any
	Overlay  map[string]any
}

type SecurityConfig struct {
	Enabled bool
	// Env is nil when security does not depend on the runtime environment.
	Env         map[string]bool
	Filter      SecurityFilterFunc
	OmitRepoURL bool
	RequireFile bool
}

// Config is the fully defaulted configuration for one top-level operation.
// Treat it as read-only once resolved.
type Config struct {
	Mode      Mode
	Git       GitConfig
	Merge     MergeConfig
	Secure    SecurityConfig
	Name      *string
	Timestamp string
	Path      string
}
