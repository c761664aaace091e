// Package instruction defines the typed Dockerfile instruction model.
//
// Each Dockerfile keyword maps to one value type (ADD, ARG, CMD, ...) with a
// validating constructor (NewADD, NewARG, NewCMD, ...). Constructors copy
// their slice arguments, so a constructed value does not share memory with the
// caller and can be treated as immutable. Rendering and parsing live in the
// render and parse packages and switch over these types.
//
// Every constructor failure is a *ValidationError and matches ErrInvalid:
//
//	run, err := instruction.NewRUN(instruction.Shell("make install"), instruction.RunOptions{})
//	if errors.Is(err, instruction.ErrInvalid) {
//	    ...
//	}
package instruction
