package app

import (
	"release-metadata/internal/adapters"
	"release-metadata/internal/core"
	"release-metadata/internal/ports"
)

type Service struct {
	Runner  ports.CommandRunnerPort
	Runtime ports.RuntimeInfoPort
	Files   ports.MetadataFilePort
	Schema  ports.SchemaValidatorPort
	Ambient core.Ambient
	Gate    core.SecurityGate
}

func NewService() Service {
	ambient := core.DefaultAmbient()
	return Service{
		Runner:  adapters.NewCommandRunnerAdapter(ambient.WorkingDir),
		Runtime: adapters.NewRuntimeInfoAdapter(),
		Files:   adapters.NewMetadataFileAdapter(),
		Schema:  adapters.NewSchemaValidatorAdapter(),
		Ambient: ambient,
		Gate:    core.NewSecurityGate(),
	}
}
