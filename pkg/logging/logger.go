// Package logging defines the minimal interface that loggers must support to be used by dockerphile.
package logging

import (
	"fmt"
	"io"

	"github.com/buildpacks/dockerphile/internal/style"
)

// Logger defines behavior required by a logging package used by dockerphile libraries
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

// WithSelectableWriter is an optional interface for loggers that can hand out a writer per level.
type WithSelectableWriter interface {
	WriterForLevel(level Level) io.Writer
}

// Tip logs a tip.
func Tip(l Logger, format string, v ...interface{}) {
	l.Infof(style.Tip("Tip: ")+format, v...)
}

// GetWriterForLevel retrieves the appropriate Writer for the log level provided.
//
// See WithSelectableWriter
func GetWriterForLevel(logger Logger, level Level) io.Writer {
	if er, ok := logger.(WithSelectableWriter); ok {
		return er.WriterForLevel(level)
	}

	return logger.Writer()
}

// IsQuiet defines whether a dockerphile logger is set to quiet mode
func IsQuiet(logger Logger) bool {
	if writer := GetWriterForLevel(logger, InfoLevel); writer == io.Discard {
		return true
	}

	return false
}

// PrefixedLogger returns a Logger whose Writer prefixes every line with prefix.
// Messages logged through it are prefixed the same way.
func PrefixedLogger(l Logger, prefix string) Logger {
	return &prefixedLogger{Logger: l, prefix: prefix}
}

type prefixedLogger struct {
	Logger
	prefix string
}

func (p *prefixedLogger) tag(msg string) string {
	return "[" + style.Prefix(p.prefix) + "] " + msg
}

func (p *prefixedLogger) Debug(msg string) { p.Logger.Debug(p.tag(msg)) }
func (p *prefixedLogger) Info(msg string)  { p.Logger.Info(p.tag(msg)) }
func (p *prefixedLogger) Warn(msg string)  { p.Logger.Warn(p.tag(msg)) }
func (p *prefixedLogger) Error(msg string) { p.Logger.Error(p.tag(msg)) }

func (p *prefixedLogger) Debugf(format string, v ...interface{}) {
	p.Logger.Debug(p.tag(fmt.Sprintf(format, v...)))
}

func (p *prefixedLogger) Infof(format string, v ...interface{}) {
	p.Logger.Info(p.tag(fmt.Sprintf(format, v...)))
}

func (p *prefixedLogger) Warnf(format string, v ...interface{}) {
	p.Logger.Warn(p.tag(fmt.Sprintf(format, v...)))
}

func (p *prefixedLogger) Errorf(format string, v ...interface{}) {
	p.Logger.Error(p.tag(fmt.Sprintf(format, v...)))
}

func (p *prefixedLogger) Writer() io.Writer {
	return NewPrefixWriter(p.Logger.Writer(), p.prefix)
}
