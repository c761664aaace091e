package quote

import "strings"

// Word quotes s with double quotes when it is empty or would otherwise be
// split, unquoted or unescaped by the Dockerfile word parser. escape is the
// escape character of the document s is written to.
func Word(s string, escape rune) string {
	if s != "" && !strings.ContainsAny(s, " \t\r\n\"'"+string(escape)) {
		return s
	}
	return Double(s, escape)
}

// Double always wraps s in double quotes, escaping quotes and the escape
// character itself with escape.
func Double(s string, escape rune) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == escape {
			b.WriteRune(escape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote removes one level of quoting from a word that is entirely wrapped
// in double or single quotes. Inside double quotes escape followed by a quote
// or by escape is reduced to the second character; any other escape is kept.
// Words that are not wholly quoted are returned unchanged.
func Unquote(s string, escape rune) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	switch {
	case first == '\'' && last == '\'':
		inner := s[1 : len(s)-1]
		if strings.ContainsRune(inner, '\'') {
			return s
		}
		return inner
	case first == '"' && last == '"':
		return unquoteDouble(s, escape)
	}
	return s
}

func unquoteDouble(s string, escape rune) string {
	inner := []rune(s[1 : len(s)-1])
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == escape && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == escape) {
			b.WriteRune(inner[i+1])
			i++
			continue
		}
		if c == '"' {
			// an unescaped quote means the word is not a single quoted string
			return s
		}
		b.WriteRune(c)
	}
	return b.String()
}
