package commands

// SoftError is returned once a command has already logged why it failed.
type SoftError struct {
	msg string
}

func NewSoftError(msg string) SoftError {
	return SoftError{msg: msg}
}

func (se SoftError) Error() string {
	return se.msg
}
