package writer

import (
	"fmt"

	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type Factory struct{}

type InspectWriter interface {
	Print(
		logger logging.Logger,
		generalInfo inspect.GeneralInfo,
		doc *dockerfile.Document,
	) error
}

func NewFactory() *Factory {
	return &Factory{}
}

// Kinds lists the supported output formats.
var Kinds = []string{"human-readable", "json", "yaml", "toml"}

func (f *Factory) Writer(kind string) (InspectWriter, error) {
	switch kind {
	case "human-readable":
		return NewHumanReadable(), nil
	case "json":
		return NewJSON(), nil
	case "yaml":
		return NewYAML(), nil
	case "toml":
		return NewTOML(), nil
	}

	return nil, fmt.Errorf("output format %s is not supported", style.Symbol(kind))
}
