package ports

import "release-metadata/internal/types"

// RuntimeInfoPort describes the runtime the metadata is generated under.
type RuntimeInfoPort interface {
	Packages() []types.PackageInfo
}
