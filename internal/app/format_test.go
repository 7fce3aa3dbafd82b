package app

import (
	"strings"
	"testing"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/models"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
)

func TestFormatLesson(t *testing.T) {
	day := time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local)
	l := timetable.Lesson{
		Name:       "Dejepis",
		Teachers:   []models.Teacher{{FirstName: "Peter", LastName: "Horvath"}},
		Start:      day.Add(9*time.Hour + 50*time.Minute),
		End:        day.Add(10*time.Hour + 35*time.Minute),
		OnlineLink: "https://meet.example.com/dej",
	}
	want := "09:50–10:35 Dejepis — Peter Horvath\n   💻 https://meet.example.com/dej"
	if got := FormatLesson(l); got != want {
		t.Fatalf("FormatLesson:\n%q\nждали\n%q", got, want)
	}

	l.Teachers, l.OnlineLink = nil, ""
	if got := FormatLesson(l); got != "09:50–10:35 Dejepis" {
		t.Fatalf("без учителей: %q", got)
	}
}

func TestFormatTeachers(t *testing.T) {
	if got := FormatTeachers(nil); got != "Справочник учителей пуст." {
		t.Fatalf("пустой: %q", got)
	}
	got := FormatTeachers([]models.Teacher{
		{ID: codec.OptInt{Int64: 1, Valid: true}, Short: "NJ", FirstName: "Jana", LastName: "Novakova"},
		{Short: "??", FirstName: "Broken"},
	})
	if got != "👩‍🏫 Учителя\nNJ — Jana Novakova" {
		t.Fatalf("FormatTeachers: %q", got)
	}
}

func TestFormatNews_Limit(t *testing.T) {
	items := make([]models.TimelineItem, 8)
	for i := range items {
		items[i].Text = string(rune('a' + i))
	}
	got := FormatNews(items, 3)
	if strings.Contains(got, "\n\ne") || !strings.HasSuffix(got, "\n\nf\n\ng\n\nh") {
		t.Fatalf("ждали три последние записи:\n%q", got)
	}
	if FormatNews(nil, 3) != "Новостей нет." {
		t.Fatalf("пустая лента")
	}
}

func TestOnDay(t *testing.T) {
	ref := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	got := onDay(ref, time.Date(2024, 1, 10, 8, 45, 30, 0, time.UTC))
	if !got.Equal(time.Date(2024, 3, 5, 8, 45, 30, 0, time.UTC)) {
		t.Fatalf("onDay = %v", got)
	}
}
