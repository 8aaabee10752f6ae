package types

type Mode string

const (
	ModeApplication Mode = "application"
	ModeCommandLine Mode = "command-line"
)

type SecurityCheck string

const (
	SecurityCheckEnabled     SecurityCheck = "enabled"
	SecurityCheckRequireFile SecurityCheck = "requireFile"
	SecurityCheckOmitRepoURL SecurityCheck = "omitRepoUrl"
)

// RepoTypeGit is the only supported repository type.
const RepoTypeGit = "git"

// Unknown replaces any git value that could not be determined.
const Unknown = "UNKNOWN"

// DefaultFilename is appended to directory paths and used when no path is set.
const DefaultFilename = "release-metadata.json"

const (
	EnvTimestamp   = "RELEASE_TIMESTAMP"
	EnvRuntimeName = "APP_ENV"
)

// DefaultRuntimeName is the runtime environment assumed when EnvRuntimeName is unset.
const DefaultRuntimeName = "development"

// TimestampLayout renders timestamps as YYYYMMDDHHmmss.
const TimestampLayout = "20060102150405"
