package common

import (
	"fmt"
	"io"
	"sync"
)

// LogWriter accumulates diagnostics and messages until they are flushed.
type LogWriter struct {
	mu       sync.Mutex
	errors   []error
	warnings []error
	messages []string
}

// Err records errors. It returns true if any error was recorded so far, so
// `log.Err()` alone works as a check.
func (l *LogWriter) Err(errs ...error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, err := range errs {
		if err != nil {
			l.errors = append(l.errors, err)
		}
	}
	return len(l.errors) > 0
}

func (l *LogWriter) Warn(warnings ...error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range warnings {
		if w != nil {
			l.warnings = append(l.warnings, w)
		}
	}
}

func (l *LogWriter) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func (l *LogWriter) Trace(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *LogWriter) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.errors...)
}

func (l *LogWriter) Warnings() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.warnings...)
}

func (l *LogWriter) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors) > 0
}

// Flush writes messages, then warnings, then errors to w and clears the log.
func (l *LogWriter) Flush(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		_, _ = fmt.Fprintln(w, m)
	}
	for _, warn := range l.warnings {
		_, _ = fmt.Fprintf(w, "warning: %v\n", warn)
	}
	for _, err := range l.errors {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
	}
	l.messages = nil
	l.warnings = nil
	l.errors = nil
}
