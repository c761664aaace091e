package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/pkg/errors"
)

// Command is one tokenized Dockerfile instruction.
type Command struct {
	Cmd      string   // lowercase instruction name
	Original string   // source text with line continuations joined
	Value    []string // arguments, without the keyword and leading flags
	JSON     bool     // arguments were written as a JSON array
	SubCmd   string   // lowercase trigger name, set for ONBUILD only
	Flags    []string // leading --flag=value options, as split by the tokenizer
	Line     int      // start line in the source
}

// Result of tokenizing a whole Dockerfile.
type Result struct {
	Commands    []Command
	EscapeToken rune
	Warnings    []string
}

// Tokenize splits a Dockerfile into commands using the BuildKit parser.
// Comments are dropped and parser directives are applied but not returned.
func Tokenize(r io.Reader) (*Result, error) {
	res, err := parser.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "tokenizing Dockerfile")
	}

	out := &Result{EscapeToken: res.EscapeToken}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Short)
	}
	for _, node := range res.AST.Children {
		out.Commands = append(out.Commands, newCommand(node))
	}
	return out, nil
}

// TokenizeLine tokenizes a single instruction. escape is the continuation
// character in effect for the document the line came from.
func TokenizeLine(line string, escape rune) (Command, error) {
	src := line
	if escape != 0 && escape != '\\' {
		src = fmt.Sprintf("# escape=%c\n%s", escape, line)
	}

	res, err := Tokenize(strings.NewReader(src))
	if err != nil {
		return Command{}, err
	}
	if len(res.Commands) != 1 {
		return Command{}, errors.Errorf("expected exactly one instruction in %q, found %d", line, len(res.Commands))
	}
	return res.Commands[0], nil
}

func newCommand(node *parser.Node) Command {
	cmd := Command{
		Cmd:      strings.ToLower(node.Value),
		Original: node.Original,
		Flags:    node.Flags,
		JSON:     node.Attributes["json"],
		Line:     node.StartLine,
	}

	next := node.Next
	if next != nil && len(next.Children) > 0 {
		sub := next.Children[0]
		cmd.SubCmd = strings.ToLower(sub.Value)
		cmd.JSON = sub.Attributes["json"]
		next = sub.Next
	}

	for n := next; n != nil; n = n.Next {
		cmd.Value = append(cmd.Value, n.Value)
	}
	return cmd
}
