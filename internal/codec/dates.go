package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ClockLayout    = "15:04"
)

// Now: источник «сегодня» для времени вида HH:MM, в самом формате даты нет.
// Подменяется в тестах.
var Now = time.Now

// jsonString возвращает строку, если значение — JSON-строка.
func jsonString(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// Date: дата без времени (YYYY-MM-DD).
type Date struct {
	Time  time.Time
	Valid bool
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, Now().Location())
	if err != nil {
		return Date{}, &ParseError{What: "date", Value: s, Err: err}
	}
	return Date{Time: t, Valid: true}, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, ok := jsonString(data)
	if !ok {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Time.Format(DateLayout))), nil
}

// DateTime: отметка времени в формате портала «YYYY-MM-DD HH:MM:SS».
type DateTime struct {
	Time  time.Time
	Valid bool
}

func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	// нулевая дата MySQL означает «не задано»
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return DateTime{}, nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, Now().Location())
	if err != nil {
		return DateTime{}, &ParseError{What: "datetime", Value: s, Err: err}
	}
	return DateTime{Time: t, Valid: true}, nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s, ok := jsonString(data)
	if !ok {
		*d = DateTime{}
		return nil
	}
	v, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Time.Format(DateTimeLayout))), nil
}

// ParseClock разбирает «H:MM» и привязывает результат к текущей дате.
// Часы и минуты вне диапазона — ошибка, а не значение по умолчанию.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, &ParseError{What: "clock", Value: s, Err: ErrShape}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, &ParseError{What: "clock hour", Value: s, Err: err}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, &ParseError{What: "clock minute", Value: s, Err: err}
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, &ParseError{What: "clock hour", Value: s, Err: ErrOutOfRange}
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, &ParseError{What: "clock minute", Value: s, Err: ErrOutOfRange}
	}
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// Clock: обязательное время звонка.
type Clock struct {
	time.Time
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	s, ok := jsonString(data)
	if !ok {
		return parseErr("clock", data, ErrShape)
	}
	t, err := ParseClock(s)
	if err != nil {
		return err
	}
	c.Time = t
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.Format(ClockLayout))), nil
}

// OptClock: время начала/конца урока в плане; пустое или нестроковое значение — отсутствие.
type OptClock struct {
	Time  time.Time
	Valid bool
}

func (c *OptClock) UnmarshalJSON(data []byte) error {
	*c = OptClock{}
	s, ok := jsonString(data)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = OptClock{Time: t, Valid: true}
	return nil
}

func (c OptClock) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(c.Time.Format(ClockLayout))), nil
}

func (c OptClock) String() string {
	if !c.Valid {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", c.Time.Hour(), c.Time.Minute())
}
