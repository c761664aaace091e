package parse

import (
	"regexp"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/command"

	"github.com/buildpacks/dockerphile/internal/quote"
	"github.com/buildpacks/dockerphile/pkg/instruction"
)

var onbuildKeyword = regexp.MustCompile(`(?i)^\s*ONBUILD\s+`)

type adapterOptions struct {
	escape rune
}

// Option configures ToInstructions.
type Option func(*adapterOptions)

// WithEscape sets the escape character of the document a command came from.
// It is needed to tokenize ONBUILD triggers that span several lines.
func WithEscape(escape rune) Option {
	return func(o *adapterOptions) {
		o.escape = escape
	}
}

// ToInstructions converts a tokenized command into validated instructions.
// ENV, LABEL and ARG with several entries expand to one instruction per
// entry. MAINTAINER is deprecated and yields no instruction.
func ToInstructions(cmd Command, opts ...Option) ([]instruction.Instruction, error) {
	o := &adapterOptions{escape: '\\'}
	for _, opt := range opts {
		opt(o)
	}

	switch cmd.Cmd {
	case command.Add:
		return one(instruction.NewADD(resources(cmd, o.escape), resourceOptions(parseFlags(cmd.Flags))))
	case command.Arg:
		return toArgs(cmd, o.escape)
	case command.Cmd:
		return one(instruction.NewCMD(formOf(cmd)))
	case command.Copy:
		f := parseFlags(cmd.Flags)
		return one(instruction.NewCOPY(resources(cmd, o.escape), instruction.CopyOptions{
			From:            f.get("from"),
			ResourceOptions: resourceOptions(f),
		}))
	case command.Entrypoint:
		return one(instruction.NewENTRYPOINT(formOf(cmd)))
	case command.Env:
		return toPairs(cmd, instruction.KindENV, o.escape, func(k, v string) (instruction.Instruction, error) {
			return instruction.NewENV(k, v)
		})
	case command.Expose:
		return one(instruction.NewEXPOSE(cmd.Value))
	case command.From:
		return toFrom(cmd)
	case command.Healthcheck:
		return toHealthcheck(cmd)
	case command.Label:
		return toPairs(cmd, instruction.KindLABEL, o.escape, func(k, v string) (instruction.Instruction, error) {
			return instruction.NewLABEL(k, v)
		})
	case command.Maintainer:
		return nil, nil
	case command.Onbuild:
		return toOnbuild(cmd, o)
	case command.Run:
		f := parseFlags(cmd.Flags)
		return one(instruction.NewRUN(formOf(cmd), instruction.RunOptions{
			Mounts:   f.all("mount"),
			Network:  f.get("network"),
			Security: f.get("security"),
		}))
	case command.Shell:
		if !cmd.JSON {
			return nil, instruction.Invalid(instruction.ReasonSyntax, instruction.KindSHELL, "must be written as a JSON array")
		}
		if len(cmd.Value) < 1 {
			return nil, instruction.Invalid(instruction.ReasonSyntax, instruction.KindSHELL, "requires at least 1 argument")
		}
		return one(instruction.NewSHELL(cmd.Value))
	case command.StopSignal:
		if err := requireArgs(cmd, instruction.KindSTOPSIGNAL); err != nil {
			return nil, err
		}
		return one(instruction.NewSTOPSIGNAL(cmd.Value[0]))
	case command.User:
		if err := requireArgs(cmd, instruction.KindUSER); err != nil {
			return nil, err
		}
		user, group, _ := strings.Cut(cmd.Value[0], ":")
		return one(instruction.NewUSER(user, group))
	case command.Volume:
		return one(instruction.NewVOLUME(cmd.Value))
	case command.Workdir:
		if err := requireArgs(cmd, instruction.KindWORKDIR); err != nil {
			return nil, err
		}
		return one(instruction.NewWORKDIR(cmd.Value[0]))
	}

	return nil, instruction.Invalid(instruction.ReasonUnknownInstruction, "", "unrecognized instruction %q", strings.ToUpper(cmd.Cmd))
}

func one[T instruction.Instruction](inst T, err error) ([]instruction.Instruction, error) {
	if err != nil {
		return nil, err
	}
	return []instruction.Instruction{inst}, nil
}

func requireArgs(cmd Command, kind instruction.Kind) error {
	if len(cmd.Value) == 0 {
		return instruction.Invalid(instruction.ReasonArguments, kind, "requires an argument")
	}
	return nil
}

func formOf(cmd Command) instruction.Form {
	if cmd.JSON {
		return instruction.Exec(cmd.Value...)
	}
	return instruction.Shell(cmd.Value...)
}

func resources(cmd Command, escape rune) []string {
	if cmd.JSON {
		return cmd.Value
	}
	out := make([]string, len(cmd.Value))
	for i, v := range cmd.Value {
		out[i] = quote.Unquote(v, escape)
	}
	return out
}

func resourceOptions(f flags) instruction.ResourceOptions {
	return instruction.ResourceOptions{
		Chown: f.get("chown"),
		Chmod: f.get("chmod"),
	}
}

func toArgs(cmd Command, escape rune) ([]instruction.Instruction, error) {
	if err := requireArgs(cmd, instruction.KindARG); err != nil {
		return nil, err
	}

	var out []instruction.Instruction
	for _, word := range cmd.Value {
		key, value, hasDefault := strings.Cut(word, "=")
		var (
			arg instruction.ARG
			err error
		)
		if hasDefault {
			arg, err = instruction.NewARGWithDefault(key, quote.Unquote(value, escape))
		} else {
			arg, err = instruction.NewARG(key)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

func toPairs(cmd Command, kind instruction.Kind, escape rune, build func(k, v string) (instruction.Instruction, error)) ([]instruction.Instruction, error) {
	if len(cmd.Value) == 0 {
		return nil, instruction.Invalid(instruction.ReasonArguments, kind, "has no key or value")
	}
	if len(cmd.Value)%2 != 0 {
		return nil, instruction.Invalid(instruction.ReasonPairs, kind, "cannot split %d values into key/value pairs", len(cmd.Value))
	}

	out := make([]instruction.Instruction, 0, len(cmd.Value)/2)
	for i := 0; i < len(cmd.Value); i += 2 {
		inst, err := build(quote.Unquote(cmd.Value[i], escape), quote.Unquote(cmd.Value[i+1], escape))
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func toFrom(cmd Command) ([]instruction.Instruction, error) {
	opts := instruction.FromOptions{Platform: parseFlags(cmd.Flags).get("platform")}

	switch {
	case len(cmd.Value) == 1:
	case len(cmd.Value) == 3 && strings.EqualFold(cmd.Value[1], "AS"):
		opts.As = cmd.Value[2]
	default:
		return nil, instruction.Invalid(instruction.ReasonArguments, instruction.KindFROM, "requires a base image optionally followed by AS <name>, got %q", strings.Join(cmd.Value, " "))
	}

	return one(instruction.NewFROM(cmd.Value[0], opts))
}

func toHealthcheck(cmd Command) ([]instruction.Instruction, error) {
	f := parseFlags(cmd.Flags)
	opts := instruction.HealthcheckOptions{
		Interval:    f.get("interval"),
		Timeout:     f.get("timeout"),
		StartPeriod: f.get("start-period"),
		Retries:     f.get("retries"),
	}

	if len(cmd.Value) == 0 {
		return one(instruction.NewHEALTHCHECK(opts, instruction.Form{}))
	}
	if !strings.EqualFold(cmd.Value[0], "CMD") {
		return nil, instruction.Invalid(instruction.ReasonSyntax, instruction.KindHEALTHCHECK, "expected CMD before the command, got %q", cmd.Value[0])
	}

	rest := cmd.Value[1:]
	var form instruction.Form
	switch {
	case len(rest) == 0:
	case cmd.JSON:
		form = instruction.Exec(rest...)
	default:
		form = instruction.Shell(strings.Join(rest, " "))
	}
	return one(instruction.NewHEALTHCHECK(opts, form))
}

func toOnbuild(cmd Command, o *adapterOptions) ([]instruction.Instruction, error) {
	if cmd.SubCmd == "" {
		return nil, instruction.Invalid(instruction.ReasonOnbuild, instruction.KindONBUILD, "requires a trigger instruction")
	}
	if cmd.SubCmd == command.Onbuild {
		return nil, instruction.Invalid(instruction.ReasonOnbuild, instruction.KindONBUILD, "chaining ONBUILD via `ONBUILD ONBUILD` isn't allowed")
	}
	if cmd.SubCmd == command.From || cmd.SubCmd == command.Maintainer {
		return nil, instruction.Invalid(instruction.ReasonOnbuild, instruction.KindONBUILD, "%s isn't allowed as an ONBUILD trigger", strings.ToUpper(cmd.SubCmd))
	}

	sub, err := TokenizeLine(onbuildKeyword.ReplaceAllString(cmd.Original, ""), o.escape)
	if err != nil {
		return nil, instruction.Invalid(instruction.ReasonOnbuild, instruction.KindONBUILD, "tokenizing trigger: %s", err)
	}

	triggers, err := ToInstructions(sub, WithEscape(o.escape))
	if err != nil {
		return nil, err
	}

	out := make([]instruction.Instruction, 0, len(triggers))
	for _, trigger := range triggers {
		onbuild, err := instruction.NewONBUILD(trigger)
		if err != nil {
			return nil, err
		}
		out = append(out, onbuild)
	}
	return out, nil
}
