// Package specerrors defines the error kinds reported by the bundler and the
// fixture generator.
//
// Both kinds are fatal to a run. Callers distinguish them with errors.Is
// against the sentinels or errors.As against the struct types:
//
//	doc, err := asm.Assemble()
//	var loadErr *specerrors.LoadError
//	if errors.As(err, &loadErr) {
//	    fmt.Println("bad source:", loadErr.Path)
//	}
package specerrors

import (
	"errors"
)

var (
	// ErrLoad indicates a source document was missing or unparseable.
	ErrLoad = errors.New("load error")

	// ErrIO indicates an output directory or file could not be written.
	ErrIO = errors.New("io error")
)

// LoadError reports a required source file that is missing, or any source
// file that is present but not a valid document.
type LoadError struct {
	// Path is the file that failed to load
	Path string
	// Module is the module name, empty for the shared source
	Module string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Module != "" {
		msg += " in module " + e.Module
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// IOError reports an output directory or file that could not be written.
type IOError struct {
	// Op is the failed operation, e.g. "mkdir" or "write"
	Op string
	// Path is the directory or file involved
	Path string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "io error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
