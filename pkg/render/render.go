package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/buildpacks/dockerphile/internal/quote"
	"github.com/buildpacks/dockerphile/pkg/instruction"
)

// DefaultEscape is the line continuation character used when a Dockerfile
// does not declare an escape directive.
const DefaultEscape = '\\'

// Renderer turns instructions into Dockerfile text. It assumes its input was
// built through the instruction constructors and does not validate again.
type Renderer struct {
	escape rune
}

type Option func(*Renderer)

// WithEscape sets the line continuation character used for multi-line
// instructions.
func WithEscape(escape rune) Option {
	return func(r *Renderer) {
		r.escape = escape
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{escape: DefaultEscape}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Instruction renders inst with the default escape character.
func Instruction(inst instruction.Instruction) string {
	return New().Render(inst)
}

// Document renders insts as a complete Dockerfile. A leading ESCAPE directive
// selects the continuation character for the rest of the file.
func Document(insts []instruction.Instruction) string {
	return New(WithEscape(EscapeOf(insts))).Document(insts)
}

// EscapeOf returns the escape character declared by a leading ESCAPE, or
// DefaultEscape.
func EscapeOf(insts []instruction.Instruction) rune {
	if len(insts) > 0 {
		if esc, ok := insts[0].(instruction.ESCAPE); ok {
			return esc.Char
		}
	}
	return DefaultEscape
}

// Continuation returns the text that ends a line and indents the next one
// within the same instruction.
func (r *Renderer) Continuation() string {
	return fmt.Sprintf(" %c\n  ", r.escape)
}

// Document joins the rendering of every instruction with newlines and
// appends a trailing newline.
func (r *Renderer) Document(insts []instruction.Instruction) string {
	lines := make([]string, 0, len(insts))
	for _, inst := range insts {
		lines = append(lines, r.Render(inst))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Render returns the canonical text of inst, which spans several lines for a
// HEALTHCHECK with options.
func (r *Renderer) Render(inst instruction.Instruction) string {
	switch i := inst.(type) {
	case instruction.ADD:
		return keyword(instruction.KindADD, resourceFlags("", i.ResourceOptions), r.resources(i.Resources))
	case instruction.ARG:
		if i.Default == nil {
			return keyword(instruction.KindARG, quote.Word(i.Key, r.escape))
		}
		return keyword(instruction.KindARG, r.pair(i.Key, *i.Default))
	case instruction.CMD:
		return keyword(instruction.KindCMD, form(i.Form))
	case instruction.COMMENT:
		return "# " + i.Text
	case instruction.COPY:
		return keyword(instruction.KindCOPY, resourceFlags(i.From, i.ResourceOptions), r.resources(i.Resources))
	case instruction.ENTRYPOINT:
		return keyword(instruction.KindENTRYPOINT, form(i.Form))
	case instruction.ENV:
		return keyword(instruction.KindENV, r.pair(i.Key, i.Value))
	case instruction.ESCAPE:
		return fmt.Sprintf("# escape=%c", i.Char)
	case instruction.EXPOSE:
		return keyword(instruction.KindEXPOSE, strings.Join(i.Ports, " "))
	case instruction.FROM:
		return r.renderFrom(i)
	case instruction.HEALTHCHECK:
		return r.renderHealthcheck(i)
	case instruction.LABEL:
		return keyword(instruction.KindLABEL, r.pair(i.Key, i.Value))
	case instruction.ONBUILD:
		return keyword(instruction.KindONBUILD, r.Render(i.Trigger))
	case instruction.RUN:
		return keyword(instruction.KindRUN, runFlags(i.RunOptions), form(i.Form))
	case instruction.SHELL:
		return keyword(instruction.KindSHELL, jsonArray(i.Args))
	case instruction.STOPSIGNAL:
		return keyword(instruction.KindSTOPSIGNAL, i.Signal)
	case instruction.USER:
		if i.Group == "" {
			return keyword(instruction.KindUSER, i.User)
		}
		return keyword(instruction.KindUSER, i.User+":"+i.Group)
	case instruction.VOLUME:
		return keyword(instruction.KindVOLUME, jsonArray(i.Paths))
	case instruction.WORKDIR:
		return keyword(instruction.KindWORKDIR, i.Path)
	}
	return ""
}

func (r *Renderer) renderFrom(i instruction.FROM) string {
	var flags string
	if i.Platform != "" {
		flags = flag("platform", i.Platform)
	}
	result := keyword(instruction.KindFROM, flags, i.BaseImage)
	if i.As != "" {
		result += " AS " + i.As
	}
	return result
}

func (r *Renderer) renderHealthcheck(i instruction.HEALTHCHECK) string {
	var b strings.Builder
	b.WriteString(string(instruction.KindHEALTHCHECK))

	options := []struct{ name, value string }{
		{"interval", i.Interval},
		{"timeout", i.Timeout},
		{"start-period", i.StartPeriod},
		{"retries", i.Retries},
	}
	for _, opt := range options {
		if opt.value == "" {
			continue
		}
		b.WriteString(r.Continuation())
		b.WriteString(flag(opt.name, opt.value))
	}

	if i.Cmd.IsZero() {
		return b.String()
	}

	b.WriteString(r.Continuation())
	b.WriteString(keyword(instruction.KindCMD, form(i.Cmd)))
	return b.String()
}

// keyword joins kw and the non-empty parts with single spaces.
func keyword(kw instruction.Kind, parts ...string) string {
	out := string(kw)
	for _, p := range parts {
		if p != "" {
			out += " " + p
		}
	}
	return out
}

func form(f instruction.Form) string {
	if f.Kind == instruction.ShellForm {
		return strings.Join(f.Args, " ")
	}
	return jsonArray(f.Args)
}

func flag(name, value string) string {
	return fmt.Sprintf("--%s=%s", name, value)
}

func resourceFlags(from string, opts instruction.ResourceOptions) string {
	var flags []string
	if from != "" {
		flags = append(flags, flag("from", from))
	}
	if opts.Chown != "" {
		flags = append(flags, flag("chown", opts.Chown))
	}
	if opts.Chmod != "" {
		flags = append(flags, flag("chmod", opts.Chmod))
	}
	return strings.Join(flags, " ")
}

func runFlags(opts instruction.RunOptions) string {
	var flags []string
	for _, m := range opts.Mounts {
		flags = append(flags, flag("mount", m))
	}
	if opts.Network != "" {
		flags = append(flags, flag("network", opts.Network))
	}
	if opts.Security != "" {
		flags = append(flags, flag("security", opts.Security))
	}
	return strings.Join(flags, " ")
}

// resources double quotes each path. The tokenizer splits ADD and COPY
// arguments on whitespace regardless of quotes, so paths holding whitespace
// switch the whole list to a JSON array.
func (r *Renderer) resources(res []string) string {
	for _, path := range res {
		if strings.IndexFunc(path, unicode.IsSpace) >= 0 {
			return jsonArray(res)
		}
	}

	quoted := make([]string, len(res))
	for i, path := range res {
		quoted[i] = quote.Double(path, r.escape)
	}
	return strings.Join(quoted, " ")
}

func (r *Renderer) pair(key, value string) string {
	return quote.Word(key, r.escape) + "=" + quote.Word(value, r.escape)
}

// jsonArray renders values as a JSON array of strings in the ["a", "b"]
// layout, without escaping HTML characters such as & in shell commands.
func jsonArray(values []string) string {
	items := make([]string, len(values))
	for i, v := range values {
		items[i] = jsonString(v)
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func jsonString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
