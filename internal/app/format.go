package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/export"
	"github.com/Spok95/edupage-school-bot/internal/models"
	"github.com/Spok95/edupage-school-bot/internal/ringing"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
)

var weekdays = [...]string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"}

func dayTitle(day time.Time) string {
	return fmt.Sprintf("%s (%s)", day.Format("02.01.2006"), weekdays[day.Weekday()])
}

func clock(t time.Time) string { return t.Format(codec.ClockLayout) }

// FormatLesson: одна строка урока: время, предмет, учителя, кабинеты, ссылка.
func FormatLesson(l timetable.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s–%s %s", clock(l.Start), clock(l.End), l.Name)
	if len(l.Teachers) > 0 {
		b.WriteString(" — " + export.TeacherNames(l.Teachers))
	}
	if len(l.Classrooms) > 0 {
		b.WriteString(" (" + export.RoomNames(l.Classrooms) + ")")
	}
	if l.IsOnline() {
		b.WriteString("\n   💻 " + l.OnlineLink)
	}
	return b.String()
}

func FormatTimetable(tt *timetable.Timetable) string {
	var b strings.Builder
	b.WriteString("📅 Расписание на " + dayTitle(tt.Date))
	if tt.Len() == 0 {
		b.WriteString("\nУроков нет.")
		return b.String()
	}
	for i, l := range tt.Lessons() {
		fmt.Fprintf(&b, "\n%d. %s", i+1, FormatLesson(l))
	}
	return b.String()
}

// FormatNext: что идёт сейчас, что дальше и когда звонок. tt уже перенесено на текущий день.
func FormatNext(tt *timetable.Timetable, now time.Time, bell ringing.Boundary, hasBell bool) string {
	var lines []string
	if l, ok := tt.LessonAt(now); ok {
		lines = append(lines, "▶️ Сейчас: "+FormatLesson(l))
	}
	if l, ok := tt.NextLessonAfter(now); ok {
		lines = append(lines, "⏭ Дальше: "+FormatLesson(l))
	} else {
		lines = append(lines, "На сегодня уроков больше нет.")
	}
	if l, ok := tt.NextOnlineLessonAfter(now); ok {
		lines = append(lines, "💻 Ближайший онлайн-урок: "+clock(l.Start)+" "+l.Name)
	}
	if hasBell {
		what := "начало урока"
		if bell.Period == ringing.Break {
			what = "перемена"
		}
		lines = append(lines, fmt.Sprintf("🔔 Звонок в %s (%s)", clock(bell.At), what))
	}
	return strings.Join(lines, "\n")
}

func FormatBells(times []models.RingingInterval) string {
	if len(times) == 0 {
		return "Расписание звонков недоступно."
	}
	var b strings.Builder
	b.WriteString("🔔 Звонки")
	for _, r := range times {
		fmt.Fprintf(&b, "\n%d. %s–%s", int64(r.Ordinal), clock(r.Start.Time), clock(r.End.Time))
	}
	return b.String()
}

func FormatTeachers(ts []models.Teacher) string {
	var b strings.Builder
	b.WriteString("👩‍🏫 Учителя")
	n := 0
	for _, t := range ts {
		// записи без id в справочнике считаем мусором
		if !t.ID.Valid {
			continue
		}
		n++
		fmt.Fprintf(&b, "\n%s — %s", t.Short, t.FullName())
	}
	if n == 0 {
		return "Справочник учителей пуст."
	}
	return b.String()
}

func FormatNews(items []models.TimelineItem, limit int) string {
	if len(items) == 0 {
		return "Новостей нет."
	}
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	var b strings.Builder
	b.WriteString("📰 Новости")
	for _, it := range items {
		b.WriteString("\n\n")
		if it.Timestamp.Valid {
			b.WriteString(it.Timestamp.Time.Format("02.01 15:04") + " ")
		}
		if it.UserName != "" {
			b.WriteString(it.UserName + ": ")
		}
		b.WriteString(strings.TrimSpace(it.Text))
	}
	return b.String()
}

// onDay переносит часы и минуты t на календарный день ref.
func onDay(ref, t time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, ref.Location())
}
