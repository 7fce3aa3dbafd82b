package codec

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUserKind = errors.New("unknown user kind")
	ErrBadUserID       = errors.New("malformed user id")
	ErrOutOfRange      = errors.New("value out of range")
	ErrShape           = errors.New("unexpected json shape")
)

// ParseError: поле пришло в узнаваемом, но испорченном виде.
type ParseError struct {
	What  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("codec: bad %s %q", e.What, e.Value)
	}
	return fmt.Sprintf("codec: bad %s %q: %v", e.What, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(what string, raw []byte, err error) *ParseError {
	v := string(raw)
	if len(v) > 64 {
		v = v[:64] + "…"
	}
	return &ParseError{What: what, Value: v, Err: err}
}
