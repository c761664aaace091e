package writer

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type HumanReadable struct{}

func NewHumanReadable() *HumanReadable {
	return &HumanReadable{}
}

func (h *HumanReadable) Print(
	logger logging.Logger,
	generalInfo inspect.GeneralInfo,
	doc *dockerfile.Document,
) error {
	if doc == nil {
		return fmt.Errorf("no Dockerfile to inspect at %s", style.Symbol(generalInfo.Path))
	}

	logger.Infof("Inspecting Dockerfile: %s\n", style.Symbol(generalInfo.Path))

	tpl := template.Must(template.New("stages").
		Funcs(template.FuncMap{"StringsJoin": strings.Join}).
		Funcs(template.FuncMap{"DashOrValue": dashOrValue}).
		Parse(stagesTemplate))
	tpl = template.Must(tpl.New("runtime").
		Parse(runtimeTemplate))
	tpl = template.Must(tpl.New("dockerfile").
		Parse(dockerfileTemplate))

	out, err := inspectOutput(inspect.NewInfoDisplay(doc, generalInfo), tpl)
	if err != nil {
		return fmt.Errorf("writing Dockerfile info: %w", err)
	}
	logger.Info(out.String())
	return nil
}

func dashOrValue(str string) string {
	if str == "" {
		return "-"
	}

	return str
}

func inspectOutput(info *inspect.InfoDisplay, tpl *template.Template) (*bytes.Buffer, error) {
	buf := bytes.NewBuffer(nil)
	tw := tabwriter.NewWriter(buf, 0, 0, 4, ' ', 0)
	if err := tpl.Execute(tw, &struct {
		Info *inspect.InfoDisplay
	}{
		info,
	}); err != nil {
		return bytes.NewBuffer(nil), err
	}
	if err := tw.Flush(); err != nil {
		return bytes.NewBuffer(nil), err
	}

	return buf, nil
}

var stagesTemplate = `
Stages:
{{- if .Info.Stages }}
  INDEX	NAME	BASE IMAGE	REGISTRY	PLATFORM	INSTRUCTIONS
{{- range $_, $s := .Info.Stages }}
  {{ $s.Index }}	{{ DashOrValue $s.Name }}	{{ $s.BaseImage }}	{{ DashOrValue $s.Registry }}	{{ DashOrValue $s.Platform }}	{{ $s.Instructions }}
{{- end }}
{{- else }}
  (none)
{{- end }}`

var runtimeTemplate = `
Runtime:
  User:	{{ DashOrValue .Info.Runtime.User }}
  Workdir:	{{ DashOrValue .Info.Runtime.Workdir }}
  Entrypoint:	{{ DashOrValue .Info.Runtime.Entrypoint }}
  Cmd:	{{ DashOrValue .Info.Runtime.Cmd }}
  Stop Signal:	{{ DashOrValue .Info.Runtime.StopSignal }}
  Healthcheck:	{{ .Info.Runtime.Healthcheck }}
  Ports:	{{ DashOrValue (StringsJoin .Info.Runtime.Ports ", ") }}
  Volumes:	{{ DashOrValue (StringsJoin .Info.Runtime.Volumes ", ") }}`

var dockerfileTemplate = `
Digest: {{ .Info.Digest }}
Size: {{ .Info.Size }}
Escape: {{ .Info.Escape }}

Instructions: {{ .Info.Instructions }}
{{- range $_, $k := .Info.Kinds }}
  {{ $k.Kind }}	{{ $k.Count }}
{{- end }}
{{ template "stages" . }}
{{ template "runtime" . }}

Build Args: {{ DashOrValue (StringsJoin .Info.Args ", ") }}
Environment: {{ DashOrValue (StringsJoin .Info.Env ", ") }}
Labels: {{ DashOrValue (StringsJoin .Info.Labels ", ") }}
{{- if .Info.Triggers }}
Onbuild Triggers: {{ StringsJoin .Info.Triggers ", " }}
{{- end }}
`
