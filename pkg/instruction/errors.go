package instruction

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every error returned from a constructor in this
// package or from the parser adapter built on it.
var ErrInvalid = errors.New("invalid instruction")

// Reason classifies why an instruction was rejected.
type Reason int

const (
	ReasonArguments          Reason = iota + 1 // Malformed arguments: wrong shape, arity or empty value.
	ReasonForm                                 // Missing, duplicated or disallowed CMD/ENTRYPOINT/RUN form.
	ReasonUnknownInstruction                   // Keyword outside the supported instruction set.
	ReasonPairs                                // ENV or LABEL values that cannot be split into pairs.
	ReasonOnbuild                              // Disallowed or nested ONBUILD trigger.
	ReasonSyntax                               // HEALTHCHECK or SHELL written with the wrong syntax.
)

var reasonNames = map[Reason]string{
	ReasonArguments:          "arguments",
	ReasonForm:               "form",
	ReasonUnknownInstruction: "unknown instruction",
	ReasonPairs:              "pairs",
	ReasonOnbuild:            "onbuild",
	ReasonSyntax:             "syntax",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// ValidationError is the single error kind raised while building or parsing
// instructions.
type ValidationError struct {
	Reason  Reason
	Kind    Kind // empty when the keyword itself was not recognized
	Message string
}

func (e *ValidationError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Invalid returns a *ValidationError for kind with a formatted message.
func Invalid(reason Reason, kind Kind, format string, a ...interface{}) error {
	return &ValidationError{
		Reason:  reason,
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

// ReasonOf returns the Reason carried by err, or zero when err is not a
// validation error.
func ReasonOf(err error) Reason {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return 0
}
