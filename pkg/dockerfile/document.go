package dockerfile

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/dockerphile/pkg/instruction"
	"github.com/buildpacks/dockerphile/pkg/logging"
	"github.com/buildpacks/dockerphile/pkg/render"
)

var _ Builder = (*Document)(nil)

// Document is an ordered sequence of instructions. Insertion order is build
// order; instructions are only ever appended.
//
// A Document is not safe for concurrent use.
type Document struct {
	instructions []instruction.Instruction
	logger       logging.Logger
}

type Option func(*Document)

// WithLogger sets the logger used while parsing and building.
func WithLogger(logger logging.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// New returns an empty Document.
func New(opts ...Option) *Document {
	d := &Document{logger: logging.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Instructions returns a copy of the instruction sequence.
func (d *Document) Instructions() []instruction.Instruction {
	out := make([]instruction.Instruction, len(d.instructions))
	copy(out, d.instructions)
	return out
}

func (d *Document) Len() int {
	return len(d.instructions)
}

// Append adds already constructed instructions in order.
func (d *Document) Append(insts ...instruction.Instruction) error {
	for i, inst := range insts {
		if inst == nil {
			return instruction.Invalid(instruction.ReasonArguments, "", "instruction %d is nil", i+1)
		}
	}
	for _, inst := range insts {
		d.append(inst)
	}
	return nil
}

func (d *Document) append(inst instruction.Instruction) {
	if inst.Kind() == instruction.KindESCAPE && len(d.instructions) > 0 {
		d.logger.Warnf("escape directive at position %d has no effect, it must be the first line", len(d.instructions)+1)
	}
	d.instructions = append(d.instructions, inst)
}

func appendResult[T instruction.Instruction](d *Document, inst T, err error) error {
	if err != nil {
		return err
	}
	d.append(inst)
	return nil
}

func (d *Document) Add(resources ...string) error {
	return d.AddWithOptions(instruction.ResourceOptions{}, resources...)
}

func (d *Document) AddWithOptions(opts instruction.ResourceOptions, resources ...string) error {
	inst, err := instruction.NewADD(resources, opts)
	return appendResult(d, inst, err)
}

func (d *Document) Arg(key string) error {
	inst, err := instruction.NewARG(key)
	return appendResult(d, inst, err)
}

func (d *Document) ArgWithDefault(key, value string) error {
	inst, err := instruction.NewARGWithDefault(key, value)
	return appendResult(d, inst, err)
}

func (d *Document) Cmd(form instruction.Form) error {
	inst, err := instruction.NewCMD(form)
	return appendResult(d, inst, err)
}

func (d *Document) Comment(text string) error {
	inst, err := instruction.NewCOMMENT(text)
	return appendResult(d, inst, err)
}

func (d *Document) Copy(resources ...string) error {
	return d.CopyWithOptions(instruction.CopyOptions{}, resources...)
}

func (d *Document) CopyWithOptions(opts instruction.CopyOptions, resources ...string) error {
	inst, err := instruction.NewCOPY(resources, opts)
	return appendResult(d, inst, err)
}

func (d *Document) Entrypoint(form instruction.Form) error {
	inst, err := instruction.NewENTRYPOINT(form)
	return appendResult(d, inst, err)
}

func (d *Document) Env(key, value string) error {
	inst, err := instruction.NewENV(key, value)
	return appendResult(d, inst, err)
}

func (d *Document) Escape(char rune) error {
	inst, err := instruction.NewESCAPE(char)
	return appendResult(d, inst, err)
}

func (d *Document) Expose(ports ...string) error {
	inst, err := instruction.NewEXPOSE(ports)
	return appendResult(d, inst, err)
}

func (d *Document) From(image string) error {
	return d.FromWithOptions(image, instruction.FromOptions{})
}

func (d *Document) FromWithOptions(image string, opts instruction.FromOptions) error {
	inst, err := instruction.NewFROM(image, opts)
	return appendResult(d, inst, err)
}

func (d *Document) Healthcheck(opts instruction.HealthcheckOptions, cmd instruction.Form) error {
	inst, err := instruction.NewHEALTHCHECK(opts, cmd)
	return appendResult(d, inst, err)
}

func (d *Document) Label(key, value string) error {
	inst, err := instruction.NewLABEL(key, value)
	return appendResult(d, inst, err)
}

func (d *Document) Onbuild(trigger instruction.Instruction) error {
	inst, err := instruction.NewONBUILD(trigger)
	return appendResult(d, inst, err)
}

func (d *Document) Run(form instruction.Form) error {
	return d.RunWithOptions(form, instruction.RunOptions{})
}

func (d *Document) RunWithOptions(form instruction.Form, opts instruction.RunOptions) error {
	inst, err := instruction.NewRUN(form, opts)
	return appendResult(d, inst, err)
}

func (d *Document) Shell(args ...string) error {
	inst, err := instruction.NewSHELL(args)
	return appendResult(d, inst, err)
}

func (d *Document) Stopsignal(signal string) error {
	inst, err := instruction.NewSTOPSIGNAL(signal)
	return appendResult(d, inst, err)
}

func (d *Document) User(user, group string) error {
	inst, err := instruction.NewUSER(user, group)
	return appendResult(d, inst, err)
}

func (d *Document) Volume(paths ...string) error {
	inst, err := instruction.NewVOLUME(paths)
	return appendResult(d, inst, err)
}

func (d *Document) Workdir(path string) error {
	inst, err := instruction.NewWORKDIR(path)
	return appendResult(d, inst, err)
}

// EscapeChar returns the line continuation character in effect for the document.
func (d *Document) EscapeChar() rune {
	return render.EscapeOf(d.instructions)
}

// String renders the document as Dockerfile text ending in a newline.
func (d *Document) String() string {
	return render.Document(d.instructions)
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, strings.NewReader(d.String()))
	if err != nil {
		return n, errors.Wrap(err, "writing Dockerfile")
	}
	return n, nil
}

// Save writes the rendered document to path, replacing any existing file.
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, []byte(d.String()), 0644); err != nil {
		return errors.Wrapf(err, "saving Dockerfile to %q", path)
	}
	d.logger.Debugf("wrote %d instructions to %s", len(d.instructions), path)
	return nil
}
