package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the common sentinel wrapped by SchemaError and
// LookupError, so callers can treat both as the same class of startup
// failure via errors.Is.
var ErrInvalidConfig = errors.New("invalid mount configuration")

// FileError indicates the configuration file could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError indicates the configuration file is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config file %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates the parsed document violates the configuration
// schema. It describes the first violation encountered.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation: %s", e.Detail)
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Detail)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidConfig }

// LookupError indicates a daemon or machine name with no registry entry.
// The document is well formed but references an unknown identity, so it
// is a schema violation in effect rather than a runtime fault.
type LookupError struct {
	Kind string // "daemon" or "machine"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s name %q", e.Kind, e.Name)
}

func (e *LookupError) Unwrap() error { return ErrInvalidConfig }
