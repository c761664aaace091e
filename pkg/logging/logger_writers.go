package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/buildpacks/dockerphile/internal/style"
)

const (
	errorLevelText = "ERROR: "
	warnLevelText  = "Warning: "
	lineFeed       = '\n'
	// log level to use when quiet is true
	quietLevel = log.WarnLevel
	// log level to use when debug is true
	verboseLevel = log.DebugLevel
	// time format the out logging uses
	timeFmt = "2006/01/02 15:04:05.000000"
)

// Level mirrors the apex/log levels so callers do not import it directly.
type Level int

const (
	DebugLevel Level = Level(log.DebugLevel)
	InfoLevel  Level = Level(log.InfoLevel)
	WarnLevel  Level = Level(log.WarnLevel)
	ErrorLevel Level = Level(log.ErrorLevel)
)

var _ Logger = (*LogWithWriters)(nil)

// LogWithWriters is a logger used for the dockerphile CLI, allowing users to
// print logs at different levels and to different writers.
type LogWithWriters struct {
	sync.Mutex
	log.Logger
	writeMu  sync.Mutex
	wantTime bool
	clock    func() time.Time
	out      io.Writer
	errOut   io.Writer
}

// NewLogWithWriters creates a logger to be used with the dockerphile CLI.
func NewLogWithWriters(stdout, stderr io.Writer, opts ...func(*LogWithWriters)) *LogWithWriters {
	lw := &LogWithWriters{
		Logger: log.Logger{
			Level: log.InfoLevel,
		},
		wantTime: false,
		clock:    time.Now,
		out:      stdout,
		errOut:   stderr,
	}
	lw.Logger.Handler = lw

	for _, opt := range opts {
		opt(lw)
	}

	return lw
}

// Discard returns a logger that drops every message.
func Discard() *LogWithWriters {
	return NewLogWithWriters(io.Discard, io.Discard)
}

// WithClock is an option used to initialize a LogWithWriters with a given clock function
func WithClock(clock func() time.Time) func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.clock = clock
	}
}

// WithVerbose is an option used to initialize a LogWithWriters with Verbose turned on or off
func WithVerbose(verbose bool) func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.WantVerbose(verbose)
	}
}

// HandleLog handles log events, printing entries appropriately
func (lw *LogWithWriters) HandleLog(e *log.Entry) error {
	lw.Lock()
	defer lw.Unlock()

	writer := lw.WriterForLevel(Level(e.Level))
	_, err := fmt.Fprint(writer, appendMissingLineFeed(fmt.Sprintf("%s%s", formatLevel(e.Level), e.Message)))

	return err
}

// WriterForLevel returns a Writer for the given Level
func (lw *LogWithWriters) WriterForLevel(level Level) io.Writer {
	if lw.Level > log.Level(level) {
		return io.Discard
	}

	out := lw.out
	if level == ErrorLevel {
		out = lw.errOut
	}
	w := &lineWriter{mu: &lw.writeMu, out: out}
	if lw.wantTime {
		w.stamp = lw.clock
	}
	return w
}

// Writer returns the base Writer for the LogWithWriters
func (lw *LogWithWriters) Writer() io.Writer {
	return lw.out
}

// WantTime turns timestamps on in log entries
func (lw *LogWithWriters) WantTime(f bool) {
	lw.wantTime = f
}

// WantQuiet reduces the number of logs returned
func (lw *LogWithWriters) WantQuiet(f bool) {
	if f {
		lw.Level = quietLevel
	}
}

// WantVerbose increases the number of logs returned
func (lw *LogWithWriters) WantVerbose(f bool) {
	if f {
		lw.Level = verboseLevel
	}
}

// IsVerbose returns whether verbose logging is on
func (lw *LogWithWriters) IsVerbose() bool {
	return lw.Level == verboseLevel
}

// lineWriter writes each message as whole lines, terminating the last one and,
// when stamp is set, starting every line with its time.
type lineWriter struct {
	mu    *sync.Mutex
	out   io.Writer
	stamp func() time.Time
}

func (w *lineWriter) Write(buf []byte) (int, error) {
	msg := appendMissingLineFeed(string(buf))
	if w.stamp != nil {
		prefix := w.stamp().Format(timeFmt) + " "
		lines := strings.SplitAfter(strings.TrimSuffix(msg, "\n"), "\n")
		msg = prefix + strings.Join(lines, prefix) + "\n"
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, msg); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func formatLevel(ll log.Level) string {
	switch ll {
	case log.ErrorLevel:
		return style.Error(errorLevelText)
	case log.WarnLevel:
		return style.Warn(warnLevelText)
	}

	return ""
}

// appendMissingLineFeed adds a line feed to the end of a string if one is not present
func appendMissingLineFeed(msg string) string {
	buff := []byte(msg)
	if len(buff) == 0 || buff[len(buff)-1] != lineFeed {
		buff = append(buff, lineFeed)
	}
	return string(buff)
}
