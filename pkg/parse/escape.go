package parse

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/buildpacks/dockerphile/pkg/instruction"
)

var escapeDirective = regexp.MustCompile(`^\s*#\s*(?i:escape)\s*=\s*(\S)\s*$`)

// ScanEscapeDirective reads r up to its first non-blank line and returns the
// escape directive declared there, or nil when that line is not one.
func ScanEscapeDirective(r io.Reader) (*instruction.ESCAPE, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		match := escapeDirective.FindStringSubmatch(line)
		if match == nil {
			return nil, nil
		}

		char, _ := utf8.DecodeRuneInString(match[1])
		esc, err := instruction.NewESCAPE(char)
		if err != nil {
			return nil, err
		}
		return &esc, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning for escape directive")
	}
	return nil, nil
}
