package codec

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// OptInt: число, которое портал присылает строкой, числом, пустой строкой или не присылает вовсе.
// Мусор превращается в «нет значения», а не в ошибку.
type OptInt struct {
	Int64 int64
	Valid bool
}

func Int(v int64) OptInt { return OptInt{Int64: v, Valid: true} }

// LooseInt разбирает строковое представление по тем же правилам, что и UnmarshalJSON.
func LooseInt(s string) OptInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptInt{}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return OptInt{}
	}
	return Int(n)
}

func (o *OptInt) UnmarshalJSON(data []byte) error {
	*o = looseIntJSON(data)
	return nil
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(strconv.FormatInt(o.Int64, 10))), nil
}

// Equal: совпадение только для присутствующих значений.
func (o OptInt) Equal(id int64) bool { return o.Valid && o.Int64 == id }

func looseIntJSON(data []byte) OptInt {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return OptInt{}
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return OptInt{}
		}
		return LooseInt(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return LooseInt(string(data))
	}
	return OptInt{}
}

// OptIntList различает «поле есть, но пустое» (Valid, len==0) и «поля нет» (!Valid).
type OptIntList struct {
	Ints  []int64
	Valid bool
}

func IntList(v ...int64) OptIntList {
	if v == nil {
		v = []int64{}
	}
	return OptIntList{Ints: v, Valid: true}
}

func (l *OptIntList) UnmarshalJSON(data []byte) error {
	*l = OptIntList{}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, r := range raw {
		if v := looseIntJSON(r); v.Valid {
			out = append(out, v.Int64)
		}
	}
	*l = OptIntList{Ints: out, Valid: true}
	return nil
}

func (l OptIntList) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	ss := make([]string, len(l.Ints))
	for i, v := range l.Ints {
		ss[i] = strconv.FormatInt(v, 10)
	}
	return json.Marshal(ss)
}

// Flex: обязательное число, которое может прийти строкой.
type Flex int64

func (f *Flex) UnmarshalJSON(data []byte) error {
	v := looseIntJSON(data)
	if !v.Valid {
		return parseErr("number", data, ErrShape)
	}
	*f = Flex(v.Int64)
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}

// Flag: булево значение в любом из встречающихся на портале видов.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return parseErr("flag", data, err)
		}
	} else {
		s = string(data)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "y", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}
