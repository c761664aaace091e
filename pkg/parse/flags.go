package parse

import "strings"

// flags holds the --name=value options written before an instruction's
// arguments. A flag given without a value maps to an empty string.
type flags map[string][]string

func parseFlags(raw []string) flags {
	out := flags{}
	for _, f := range raw {
		name, value, _ := strings.Cut(strings.TrimPrefix(f, "--"), "=")
		out[strings.ToLower(name)] = append(out[strings.ToLower(name)], value)
	}
	return out
}

// get returns the last value given for name.
func (f flags) get(name string) string {
	values := f[name]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

func (f flags) all(name string) []string {
	return f[name]
}
