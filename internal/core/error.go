package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoEngine     = errors.New("no engine registered")
	ErrViewNotFound = errors.New("view not found")
	ErrEmptyKey     = errors.New("empty namespace key")
	ErrIncomplete   = errors.New("compiled entry is incomplete")
)

type Side string

const (
	SideServer Side = "server"
	SideClient Side = "client"
)

// CompileError is returned by engines when a template fails to compile.
type CompileError struct {
	Filename string
	Side     Side
	Err      error
}

func (e *CompileError) Error() string {
	if e.Side == "" {
		return fmt.Sprintf("%s: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Filename, e.Side, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

type MissingReaderError struct {
	Path string
}

func (e *MissingReaderError) Error() string {
	return "no reader for " + e.Path
}

// NoEngineError wraps ErrNoEngine with the extension that was looked up.
func NoEngineError(extension, filename string) error {
	if filename == "" {
		return fmt.Errorf("%w for extension %q", ErrNoEngine, extension)
	}
	return fmt.Errorf("%w for extension %q (%s)", ErrNoEngine, extension, filename)
}
