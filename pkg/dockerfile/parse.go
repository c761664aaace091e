package dockerfile

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/buildpacks/dockerphile/pkg/instruction"
	"github.com/buildpacks/dockerphile/pkg/parse"
	"github.com/buildpacks/dockerphile/pkg/render"
)

// FromSource parses the Dockerfile at path into a new Document.
func FromSource(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening Dockerfile %q", path)
	}
	defer f.Close()

	return FromReader(f, opts...)
}

// FromReader parses Dockerfile text into a new Document. A leading escape
// directive is kept as the first instruction; other comments are dropped.
func FromReader(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading Dockerfile")
	}

	esc, err := parse.ScanEscapeDirective(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	result, err := parse.Tokenize(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		d.logger.Warn(w)
	}

	// the tokenizer decides which escape character the words were split with
	switch {
	case esc != nil && esc.Char == result.EscapeToken:
		d.append(*esc)
	case esc != nil:
		d.logger.Warnf("escape directive %q is ignored, directives must precede blank lines and instructions", string(esc.Char))
	case result.EscapeToken != render.DefaultEscape:
		d.append(instruction.ESCAPE{Char: result.EscapeToken})
	}

	for _, cmd := range result.Commands {
		d.logger.Debugf("line %d: %s", cmd.Line, cmd.Original)

		insts, err := parse.ToInstructions(cmd, parse.WithEscape(result.EscapeToken))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", cmd.Line)
		}
		if len(insts) == 0 {
			d.logger.Debugf("line %d: dropped deprecated %s instruction", cmd.Line, cmd.Cmd)
		}
		for _, inst := range insts {
			d.append(inst)
		}
	}

	return d, nil
}
