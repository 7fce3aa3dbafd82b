package codec

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func withNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return now }
	t.Cleanup(func() { Now = prev })
}

func TestParseClock(t *testing.T) {
	withNow(t, time.Date(2024, 1, 10, 13, 37, 0, 0, time.UTC))

	got, err := ParseClock("8:05")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 10, 8, 5, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ожидали %v, получили %v", want, got)
	}

	t.Run("out_of_range", func(t *testing.T) {
		for _, s := range []string{"24:00", "12:60", "-1:10"} {
			_, err := ParseClock(s)
			var pe *ParseError
			if !errors.As(err, &pe) || !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("%q: ожидали ParseError/ErrOutOfRange, получили %v", s, err)
			}
		}
	})
	t.Run("malformed", func(t *testing.T) {
		for _, s := range []string{"", "8", "aa:10", "8:bb", "8:00:00"} {
			if _, err := ParseClock(s); err == nil {
				t.Fatalf("%q: ожидали ошибку", s)
			}
		}
	})
}

func TestOptClock_JSON(t *testing.T) {
	withNow(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	var v struct {
		Start OptClock `json:"starttime"`
		End   OptClock `json:"endtime"`
		None  OptClock `json:"none"`
	}
	if err := json.Unmarshal([]byte(`{"starttime":"08:00","endtime":"","none":null}`), &v); err != nil {
		t.Fatal(err)
	}
	if !v.Start.Valid || v.Start.String() != "08:00" || v.End.Valid || v.None.Valid {
		t.Fatalf("неверный разбор: %#v", v)
	}
	if err := json.Unmarshal([]byte(`{"starttime":"25:00"}`), &v); err == nil {
		t.Fatal("ожидали ошибку для 25:00")
	}
}

func TestDateAndDateTime(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil || !d.Valid || d.Time.Day() != 10 {
		t.Fatalf("неверная дата: %#v (%v)", d, err)
	}
	if d, err := ParseDate(""); err != nil || d.Valid {
		t.Fatalf("пустая дата — отсутствие значения: %#v (%v)", d, err)
	}
	if _, err := ParseDate("10.01.2024"); err == nil {
		t.Fatal("ожидали ошибку для чужого формата")
	}

	dt, err := ParseDateTime("2024-01-10 07:45:12")
	if err != nil || !dt.Valid || dt.Time.Second() != 12 {
		t.Fatalf("неверная отметка: %#v (%v)", dt, err)
	}
	if dt, err := ParseDateTime("0000-00-00 00:00:00"); err != nil || dt.Valid {
		t.Fatalf("нулевая дата — отсутствие значения: %#v (%v)", dt, err)
	}
}
