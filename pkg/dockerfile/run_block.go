package dockerfile

import (
	"fmt"
	"strings"

	"github.com/buildpacks/dockerphile/pkg/instruction"
)

// RunBlock collects shell commands and appends them to a Document as a single
// RUN instruction, chained with && on continuation lines.
type RunBlock struct {
	doc       *Document
	form      instruction.FormKind
	commands  []string
	committed bool
}

// RunBlock starts a block that will commit a RUN in the given form, which
// must be exec or shell.
func (d *Document) RunBlock(form instruction.FormKind) (*RunBlock, error) {
	if form != instruction.ExecForm && form != instruction.ShellForm {
		return nil, instruction.Invalid(instruction.ReasonForm, instruction.KindRUN, "%s form is not supported", form)
	}
	return &RunBlock{doc: d, form: form}, nil
}

// WithRunBlock runs fn against a new block and commits it when fn returns
// nil. When fn fails nothing is appended and its error is returned.
func (d *Document) WithRunBlock(form instruction.FormKind, fn func(*RunBlock) error) error {
	block, err := d.RunBlock(form)
	if err != nil {
		return err
	}
	if err := fn(block); err != nil {
		return err
	}
	return block.Commit()
}

// Run buffers command for the block.
func (b *RunBlock) Run(command string) {
	b.commands = append(b.commands, command)
}

// Commit appends the buffered commands to the document as one RUN.
func (b *RunBlock) Commit() error {
	if b.committed {
		return instruction.Invalid(instruction.ReasonArguments, instruction.KindRUN, "run block was already committed")
	}
	if len(b.commands) == 0 {
		return instruction.Invalid(instruction.ReasonArguments, instruction.KindRUN, "run block has no commands")
	}

	esc := b.doc.EscapeChar()
	joined := fmt.Sprintf("%c\n  ", esc) + strings.Join(b.commands, fmt.Sprintf(" && %c\n  ", esc))

	if err := b.doc.Run(instruction.Form{Kind: b.form, Args: []string{joined}}); err != nil {
		return err
	}
	b.committed = true
	return nil
}
