package adapters

import (
	"runtime"
	"runtime/debug"

	"release-metadata/internal/ports"
	"release-metadata/internal/types"
)

// RuntimeInfoAdapter reports the Go toolchain the binary was built with and,
// when build information is embedded, the versions of its modules.
type RuntimeInfoAdapter struct {
	ReadBuildInfo func() (*debug.BuildInfo, bool)
}

func NewRuntimeInfoAdapter() RuntimeInfoAdapter {
	return RuntimeInfoAdapter{ReadBuildInfo: debug.ReadBuildInfo}
}

func (a RuntimeInfoAdapter) Packages() []types.PackageInfo {
	packages := []types.PackageInfo{{
		Name: "go",
		Versions: map[string]string{
			"go":       runtime.Version(),
			"goos":     runtime.GOOS,
			"goarch":   runtime.GOARCH,
			"compiler": runtime.Compiler,
		},
	}}
	if a.ReadBuildInfo == nil {
		return packages
	}
	info, ok := a.ReadBuildInfo()
	if !ok || info == nil || info.Main.Path == "" {
		return packages
	}

	versions := map[string]string{info.Main.Path: moduleVersion(info.Main)}
	for _, dep := range info.Deps {
		if dep == nil {
			continue
		}
		versions[dep.Path] = moduleVersion(*dep)
	}
	return append(packages, types.PackageInfo{Name: info.Main.Path, Versions: versions})
}

func moduleVersion(module debug.Module) string {
	if module.Replace != nil && module.Replace.Version != "" {
		return module.Replace.Version
	}
	if module.Version == "" {
		return "(devel)"
	}
	return module.Version
}

var _ ports.RuntimeInfoPort = RuntimeInfoAdapter{}
