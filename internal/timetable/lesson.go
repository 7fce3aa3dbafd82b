package timetable

import (
	"time"

	"github.com/Spok95/edupage-school-bot/internal/models"
)

// Lesson: урок из дневного плана со всеми ссылками, разрешёнными по справочнику.
type Lesson struct {
	SubjectID  int64
	Name       string
	Short      string
	Teachers   []models.Teacher
	Classrooms []models.Base
	Start      time.Time
	End        time.Time
	OnlineLink string
}

func (l Lesson) IsOnline() bool { return l.OnlineLink != "" }

// Contains: момент t внутри урока, обе границы включительно.
func (l Lesson) Contains(t time.Time) bool {
	return !t.Before(l.Start) && !t.After(l.End)
}

// Timetable: уроки одного дня в порядке плана.
type Timetable struct {
	Date    time.Time
	lessons []Lesson
}

func (tt *Timetable) Lessons() []Lesson {
	return append([]Lesson(nil), tt.lessons...)
}

func (tt *Timetable) Len() int { return len(tt.lessons) }

// LessonAt: первый урок, идущий в момент t.
func (tt *Timetable) LessonAt(t time.Time) (Lesson, bool) {
	for _, l := range tt.lessons {
		if l.Contains(t) {
			return l, true
		}
	}
	return Lesson{}, false
}

// NextLessonAfter: первый по порядку урок, начинающийся строго после t.
func (tt *Timetable) NextLessonAfter(t time.Time) (Lesson, bool) {
	for _, l := range tt.lessons {
		if l.Start.After(t) {
			return l, true
		}
	}
	return Lesson{}, false
}

func (tt *Timetable) NextOnlineLessonAfter(t time.Time) (Lesson, bool) {
	for _, l := range tt.lessons {
		if l.Start.After(t) && l.IsOnline() {
			return l, true
		}
	}
	return Lesson{}, false
}

func (tt *Timetable) First() (Lesson, bool) {
	if len(tt.lessons) == 0 {
		return Lesson{}, false
	}
	return tt.lessons[0], true
}

func (tt *Timetable) Last() (Lesson, bool) {
	if len(tt.lessons) == 0 {
		return Lesson{}, false
	}
	return tt.lessons[len(tt.lessons)-1], true
}

// On переносит время уроков на календарный день day. Время в плане привязано
// к дню разбора снимка, а запросы бота идут по текущему дню.
func (tt *Timetable) On(day time.Time) *Timetable {
	out := &Timetable{Date: tt.Date, lessons: make([]Lesson, len(tt.lessons))}
	for i, l := range tt.lessons {
		l.Start = atDay(day, l.Start)
		l.End = atDay(day, l.End)
		out.lessons[i] = l
	}
	return out
}

func atDay(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location())
}
