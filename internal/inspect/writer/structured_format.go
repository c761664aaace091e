package writer

import (
	"fmt"

	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type StructuredFormat struct {
	MarshalFunc func(interface{}) ([]byte, error)
}

func (w *StructuredFormat) Print(
	logger logging.Logger,
	generalInfo inspect.GeneralInfo,
	doc *dockerfile.Document,
) error {
	if doc == nil {
		return fmt.Errorf("no Dockerfile to inspect at %s", style.Symbol(generalInfo.Path))
	}

	out, err := w.MarshalFunc(*inspect.NewInfoDisplay(doc, generalInfo))
	if err != nil {
		return fmt.Errorf("preparing output for %s: %w", style.Symbol(generalInfo.Path), err)
	}

	_, err = logger.Writer().Write(out)
	return err
}
