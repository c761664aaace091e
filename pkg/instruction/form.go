package instruction

import (
	"fmt"
	"strings"
)

// FormKind selects one of the mutually exclusive argument syntaxes of CMD,
// ENTRYPOINT and RUN.
type FormKind int

const (
	ExecForm    FormKind = iota + 1 // JSON array, executed without a shell.
	DefaultForm                     // JSON array of default parameters for ENTRYPOINT. CMD only.
	ShellForm                       // Literal tokens run through the image shell.
)

func (k FormKind) String() string {
	switch k {
	case ExecForm:
		return "exec"
	case DefaultForm:
		return "default"
	case ShellForm:
		return "shell"
	}
	return fmt.Sprintf("form(%d)", int(k))
}

// ParseFormKind maps "exec", "default" or "shell" to its FormKind.
func ParseFormKind(s string) (FormKind, error) {
	switch s {
	case "exec":
		return ExecForm, nil
	case "default":
		return DefaultForm, nil
	case "shell":
		return ShellForm, nil
	}
	return 0, Invalid(ReasonForm, "", "invalid form specifier %q", s)
}

// Form is the argument list of an instruction together with the syntax it is
// written in. The zero Form means no form was supplied.
type Form struct {
	Kind FormKind
	Args []string
}

// Exec returns an exec form over args.
func Exec(args ...string) Form {
	return Form{Kind: ExecForm, Args: args}
}

// Default returns a default-parameters form over args.
func Default(args ...string) Form {
	return Form{Kind: DefaultForm, Args: args}
}

// Shell returns a shell form over args. Instructions keep a shell form as a
// single command string, joining args with spaces.
func Shell(args ...string) Form {
	return Form{Kind: ShellForm, Args: args}
}

// IsZero reports whether no form was supplied.
func (f Form) IsZero() bool {
	return f.Kind == 0 && f.Args == nil
}

// SelectForm builds a Form from three independently optional argument lists.
// Exactly one of them must be non-nil.
func SelectForm(exec, defaults, shell []string) (Form, error) {
	var (
		form  Form
		count int
	)
	if exec != nil {
		form, count = Exec(exec...), count+1
	}
	if defaults != nil {
		form, count = Default(defaults...), count+1
	}
	if shell != nil {
		form, count = Shell(shell...), count+1
	}
	if count != 1 {
		return Form{}, Invalid(ReasonForm, "", "exactly 1 argument form must be used, got %d", count)
	}
	return form, nil
}

func checkForm(kind Kind, form Form, allowed ...FormKind) (Form, error) {
	if form.Kind == 0 {
		return Form{}, Invalid(ReasonForm, kind, "exactly 1 argument form must be used, got 0")
	}

	permitted := false
	for _, k := range allowed {
		if form.Kind == k {
			permitted = true
			break
		}
	}
	if !permitted {
		return Form{}, Invalid(ReasonForm, kind, "%s form is not supported", form.Kind)
	}

	if len(form.Args) < 1 {
		return Form{}, Invalid(ReasonArguments, kind, "%s form requires at least one parameter", form.Kind)
	}

	if form.Kind == ShellForm {
		return Form{Kind: ShellForm, Args: []string{strings.Join(form.Args, " ")}}, nil
	}
	return Form{Kind: form.Kind, Args: copyStrings(form.Args)}, nil
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
