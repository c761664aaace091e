package inspect

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"

	"github.com/buildpacks/dockerphile/internal/name"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/instruction"
)

type GeneralInfo struct {
	Path string
}

type KindCount struct {
	Kind  string `json:"kind" yaml:"kind" toml:"kind"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

type StageDisplay struct {
	Index        int    `json:"index" yaml:"index" toml:"index"`
	BaseImage    string `json:"base_image" yaml:"base_image" toml:"base_image"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Platform     string `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`
	Registry     string `json:"registry,omitempty" yaml:"registry,omitempty" toml:"registry,omitempty"`
	Repository   string `json:"repository,omitempty" yaml:"repository,omitempty" toml:"repository,omitempty"`
	Identifier   string `json:"identifier,omitempty" yaml:"identifier,omitempty" toml:"identifier,omitempty"`
	Instructions int    `json:"instructions" yaml:"instructions" toml:"instructions"`
}

type RuntimeDisplay struct {
	User        string   `json:"user,omitempty" yaml:"user,omitempty" toml:"user,omitempty"`
	Workdir     string   `json:"workdir,omitempty" yaml:"workdir,omitempty" toml:"workdir,omitempty"`
	Entrypoint  string   `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty" toml:"entrypoint,omitempty"`
	Cmd         string   `json:"cmd,omitempty" yaml:"cmd,omitempty" toml:"cmd,omitempty"`
	StopSignal  string   `json:"stop_signal,omitempty" yaml:"stop_signal,omitempty" toml:"stop_signal,omitempty"`
	Healthcheck bool     `json:"healthcheck" yaml:"healthcheck" toml:"healthcheck"`
	Ports       []string `json:"ports" yaml:"ports" toml:"ports"`
	Volumes     []string `json:"volumes" yaml:"volumes" toml:"volumes"`
}

type InfoDisplay struct {
	Path         string         `json:"path" yaml:"path" toml:"path"`
	Digest       string         `json:"digest" yaml:"digest" toml:"digest"`
	Size         string         `json:"size" yaml:"size" toml:"size"`
	Escape       string         `json:"escape" yaml:"escape" toml:"escape"`
	Instructions int            `json:"instructions" yaml:"instructions" toml:"instructions"`
	Kinds        []KindCount    `json:"kinds" yaml:"kinds" toml:"kinds"`
	Stages       []StageDisplay `json:"stages" yaml:"stages" toml:"stages"`
	Args         []string       `json:"args" yaml:"args" toml:"args"`
	Env          []string       `json:"env" yaml:"env" toml:"env"`
	Labels       []string       `json:"labels" yaml:"labels" toml:"labels"`
	Runtime      RuntimeDisplay `json:"runtime" yaml:"runtime" toml:"runtime"`
	Triggers     []string       `json:"onbuild,omitempty" yaml:"onbuild,omitempty" toml:"onbuild,omitempty"`
}

// NewInfoDisplay summarises doc. Runtime settings reflect the last stage, as
// that is the one producing the final image.
func NewInfoDisplay(doc *dockerfile.Document, generalInfo GeneralInfo) *InfoDisplay {
	rendered := doc.String()
	info := &InfoDisplay{
		Path:    generalInfo.Path,
		Digest:  digest.FromString(rendered).String(),
		Size:    humanize.Bytes(uint64(len(rendered))),
		Escape:  string(doc.EscapeChar()),
		Kinds:   []KindCount{},
		Args:    []string{},
		Env:     []string{},
		Labels:  []string{},
		Stages:  []StageDisplay{},
		Runtime: RuntimeDisplay{Ports: []string{}, Volumes: []string{}},
	}

	counts := map[instruction.Kind]int{}
	for _, inst := range doc.Instructions() {
		info.Instructions++
		counts[inst.Kind()]++

		if from, ok := inst.(instruction.FROM); ok {
			info.Stages = append(info.Stages, displayStage(len(info.Stages), from))
			info.Runtime = RuntimeDisplay{Ports: []string{}, Volumes: []string{}}
			continue
		}
		if n := len(info.Stages); n > 0 {
			info.Stages[n-1].Instructions++
		}

		switch i := inst.(type) {
		case instruction.ARG:
			info.Args = appendUnique(info.Args, i.Key)
		case instruction.ENV:
			info.Env = appendUnique(info.Env, i.Key)
		case instruction.LABEL:
			info.Labels = appendUnique(info.Labels, i.Key)
		case instruction.EXPOSE:
			for _, p := range i.Ports {
				info.Runtime.Ports = appendUnique(info.Runtime.Ports, p)
			}
		case instruction.VOLUME:
			for _, p := range i.Paths {
				info.Runtime.Volumes = appendUnique(info.Runtime.Volumes, p)
			}
		case instruction.USER:
			info.Runtime.User = i.User
			if i.Group != "" {
				info.Runtime.User += ":" + i.Group
			}
		case instruction.WORKDIR:
			info.Runtime.Workdir = i.Path
		case instruction.ENTRYPOINT:
			info.Runtime.Entrypoint = displayForm(i.Form)
		case instruction.CMD:
			info.Runtime.Cmd = displayForm(i.Form)
		case instruction.STOPSIGNAL:
			info.Runtime.StopSignal = i.Signal
		case instruction.HEALTHCHECK:
			info.Runtime.Healthcheck = !i.Cmd.IsZero()
		case instruction.ONBUILD:
			info.Triggers = append(info.Triggers, string(i.Trigger.Kind()))
		}
	}

	for _, kind := range instruction.Kinds {
		if counts[kind] > 0 {
			info.Kinds = append(info.Kinds, KindCount{Kind: string(kind), Count: counts[kind]})
		}
	}
	sort.Strings(info.Args)
	sort.Strings(info.Env)
	sort.Strings(info.Labels)

	return info
}

func displayStage(index int, from instruction.FROM) StageDisplay {
	stage := StageDisplay{
		Index:     index,
		BaseImage: from.BaseImage,
		Name:      from.As,
		Platform:  from.Platform,
	}

	if ref, ok := name.ParseBaseImage(from.BaseImage); ok {
		stage.Registry = ref.Registry
		stage.Repository = ref.Repository
		stage.Identifier = ref.Identifier
	}
	return stage
}

func displayForm(f instruction.Form) string {
	if f.Kind == instruction.ShellForm {
		return strings.Join(f.Args, " ")
	}
	return "[" + strings.Join(f.Args, ", ") + "]"
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
