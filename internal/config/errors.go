package config

import "fmt"

// Kind classifies configuration failures.
type Kind int

const (
	KindIO Kind = iota
	KindParse
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Error is a tagged configuration error carrying the offending file path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s error in %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
