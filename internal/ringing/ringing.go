// Package ringing отвечает на вопрос «когда следующий звонок» по расписанию звонков школы.
package ringing

import (
	"time"

	"github.com/Spok95/edupage-school-bot/internal/models"
)

// Period: что начинается на границе.
type Period int

const (
	Lesson Period = iota
	Break
)

func (p Period) String() string {
	if p == Break {
		return "break"
	}
	return "lesson"
}

type Boundary struct {
	At     time.Time
	Period Period
}

type Source interface {
	Snapshot() (*models.Snapshot, error)
}

type Schedule struct {
	src Source
	now func() time.Time
}

type Option func(*Schedule)

// WithClock подменяет «сегодня» для проверки выходных.
func WithClock(now func() time.Time) Option {
	return func(s *Schedule) { s.now = now }
}

func New(src Source, opts ...Option) *Schedule {
	s := &Schedule{src: src, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Times: расписание звонков; без входа пустое.
func (s *Schedule) Times() []models.RingingInterval {
	snap, err := s.src.Snapshot()
	if err != nil {
		return nil
	}
	return append([]models.RingingInterval(nil), snap.Ringing...)
}

// NextBoundary: ближайший звонок после t: начало урока (Lesson) или его конец (Break).
// В субботу и воскресенье ответа нет. День недели берётся из текущей даты, а не из t.
func (s *Schedule) NextBoundary(t time.Time) (Boundary, bool) {
	switch s.now().Weekday() {
	case time.Saturday, time.Sunday:
		return Boundary{}, false
	}
	for _, r := range s.Times() {
		if t.Before(r.Start.Time) {
			return Boundary{At: r.Start.Time, Period: Lesson}, true
		}
		if t.Before(r.End.Time) {
			return Boundary{At: r.End.Time, Period: Break}, true
		}
	}
	return Boundary{}, false
}
