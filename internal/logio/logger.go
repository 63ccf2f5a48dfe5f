// Package logio provides the command's leveled log, which remembers whether
// anything went wrong so that the process can exit accordingly.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Exit codes reported by Logger.ExitCode.
const (
	ExitOK       = 0
	ExitError    = 1 // an error was logged
	ExitLogError = 2 // the log itself could not be written
)

// Logger writes "LEVEL: message" lines to an output stream. It is safe for
// use from multiple goroutines; each line is written with a single call to
// the output.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	exitCode int
	quiet    map[string]bool
}

// New returns a logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{out: out}
}

// SetOutput changes where log lines go.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.out = out
}

// Quiet discards lines of the given level, or re-enables them.
func (log *Logger) Quiet(level string, quiet bool) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.quiet == nil {
		log.quiet = make(map[string]bool)
	}
	log.quiet[level] = quiet
}

// ExitCode returns a code to pass to os.Exit: non-zero if any error was
// logged.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs at level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs err, if it is not nil.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like Printf("ERROR", ...), but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.setExit(ExitError)
	log.print("ERROR", mess, args...)
}

// Printf logs a line like "level: message". Any write error is logged in turn
// as best it can, and makes ExitCode non-zero.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if !log.quiet[level] {
		log.print(level, mess, args...)
	}
}

func (log *Logger) print(level, mess string, args ...interface{}) {
	if err := log.write(level, mess, args...); err != nil {
		log.setExit(ExitLogError)
		log.write("ERROR", "log write failed: %v", err)
	}
}

func (log *Logger) write(level, mess string, args ...interface{}) error {
	if log.out == nil {
		return nil
	}
	log.buf.Reset()
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.out.Write(log.buf.Bytes())
	return err
}

func (log *Logger) setExit(code int) {
	if code > log.exitCode {
		log.exitCode = code
	}
}
