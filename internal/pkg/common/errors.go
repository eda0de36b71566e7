package common

import (
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast"
	"runtime"
	"slices"
	"strings"
)

// Error is a user facing error attached to source locations.
type Error struct {
	Location ast.Location
	Extra    []ast.Location
	Message  string
}

func (e Error) Error() string {
	sb := strings.Builder{}
	cursorString := e.Location.CursorString()
	if cursorString != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", cursorString, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", e.Message))
	}

	var uniqueExtra []ast.Location
	for _, x := range e.Extra {
		if x.IsEmpty() {
			continue
		}
		if !slices.ContainsFunc(uniqueExtra, func(y ast.Location) bool {
			return y.EqualsTo(x)
		}) {
			uniqueExtra = append(uniqueExtra, x)
		}
	}

	for _, extra := range uniqueExtra {
		sb.WriteString(fmt.Sprintf("+ %s\n", extra.CursorString()))
	}
	return sb.String()
}

func NewSystemError(err error) error {
	return systemError{inner: err}
}

type systemError struct {
	inner error
}

func (e systemError) Error() string {
	return fmt.Sprintf("system error: %v", e.inner)
}

func (e systemError) Unwrap() error {
	return e.inner
}

// NewCompilerError reports a broken internal invariant. It records the caller position.
func NewCompilerError(message string) error {
	_, file, line, _ := runtime.Caller(1)
	return &CompilerError{Message: message, file: file, line: line}
}

// NewCompilerErrorWithDump is NewCompilerError with a state dump attached, usually a
// rendered pattern matrix.
func NewCompilerErrorWithDump(message string, dump string) error {
	_, file, line, _ := runtime.Caller(1)
	return &CompilerError{Message: message, Dump: dump, file: file, line: line}
}

type CompilerError struct {
	Message string
	Dump    string
	file    string
	line    int
}

func (e *CompilerError) Error() string {
	if e.Dump == "" {
		return fmt.Sprintf("%s at %s:%d", e.Message, e.file, e.line)
	}
	return fmt.Sprintf("%s at %s:%d\n%s", e.Message, e.file, e.line, e.Dump)
}

func IsCompilerError(err error) bool {
	var ce *CompilerError
	return errors.As(err, &ce)
}
