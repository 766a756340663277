package vscode

import "fmt"

type ErrStoreUnavailable struct {
	Path string
	Err  error
}

func (e *ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("state store %s unavailable: %v", e.Path, e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.Err
}

// ErrMalformed reports a breakpoint entry that lacks a required field or
// carries a value of the wrong type. Index is -1 when the whole record is bad.
type ErrMalformed struct {
	Store  string
	Index  int
	Field  string
	Reason string
}

func (e *ErrMalformed) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed breakpoint record in %s: %s", e.Store, e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("malformed breakpoint #%d in %s: %s", e.Index, e.Store, e.Reason)
	}
	return fmt.Sprintf("malformed breakpoint #%d in %s: %s %s", e.Index, e.Store, e.Field, e.Reason)
}

type ErrUnsupportedPlatform struct {
	GOOS string
}

func (e *ErrUnsupportedPlatform) Error() string {
	return fmt.Sprintf("unsupported platform %q", e.GOOS)
}
