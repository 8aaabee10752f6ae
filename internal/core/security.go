package core

import (
	"os"

	"release-metadata/internal/types"
)

// SecurityGate answers whether a security feature applies under a
// configuration and the current runtime environment.
type SecurityGate struct {
	LookupEnv func(key string) (string, bool)
}

func NewSecurityGate() SecurityGate {
	return SecurityGate{LookupEnv: os.LookupEnv}
}

// Check evaluates flag. Every flag is false while security is not in effect.
func (g SecurityGate) Check(flag types.SecurityCheck, config types.Config) bool {
	if !g.isEnabled(config.Secure) {
		return false
	}
	switch flag {
	case types.SecurityCheckEnabled:
		return true
	case types.SecurityCheckRequireFile:
		return config.Secure.RequireFile
	case types.SecurityCheckOmitRepoURL:
		return config.Secure.OmitRepoURL
	default:
		return false
	}
}

// RuntimeName is read on every call so a changed environment is observed.
func (g SecurityGate) RuntimeName() string {
	lookup := g.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if name, ok := lookup(types.EnvRuntimeName); ok && name != "" {
		return name
	}
	return types.DefaultRuntimeName
}

func (g SecurityGate) isEnabled(secure types.SecurityConfig) bool {
	if !secure.Enabled {
		return false
	}
	if secure.Env == nil {
		return true
	}
	return secure.Env[g.RuntimeName()]
}
