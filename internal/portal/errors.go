package portal

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindOther Kind = iota
	KindInvalidCredentials
	KindHTTP
	KindInvalidResponse
	KindParse
	KindSerialization
	KindNotLoggedIn
	KindMissingData
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindHTTP:
		return "http error"
	case KindInvalidResponse:
		return "invalid response"
	case KindParse:
		return "parse error"
	case KindSerialization:
		return "serialization error"
	case KindNotLoggedIn:
		return "not logged in"
	case KindMissingData:
		return "missing data"
	}
	return "other"
}

// Error: ошибка работы с порталом. errors.Is сравнивает только вид,
// поэтому errors.Is(err, ErrNotLoggedIn) работает для любой детализации.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrHTTP               = &Error{Kind: KindHTTP}
	ErrInvalidResponse    = &Error{Kind: KindInvalidResponse}
	ErrParse              = &Error{Kind: KindParse}
	ErrSerialization      = &Error{Kind: KindSerialization}
	ErrNotLoggedIn        = &Error{Kind: KindNotLoggedIn}
	ErrMissingData        = &Error{Kind: KindMissingData}
	ErrOther              = &Error{Kind: KindOther}
)

func (e *Error) Error() string {
	msg := "edupage: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError: для пакетов поверх сессии (расписание, замены).
func NewError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf возвращает вид ошибки портала или KindOther для чужих ошибок.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}
