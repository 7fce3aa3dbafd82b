package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/dbi"
	"github.com/Spok95/edupage-school-bot/internal/export"
	"github.com/Spok95/edupage-school-bot/internal/testutil/fixture"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
)

func reopen(t *testing.T, w *export.Workbook) *excelize.File {
	t.Helper()
	b, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	return f
}

func TestTimetableWorkbook(t *testing.T) {
	prev := codec.Now
	codec.Now = func() time.Time { return fixture.Wednesday }
	t.Cleanup(func() { codec.Now = prev })

	s, _ := fixture.LoggedIn(t, "")
	st := dbi.New(s)
	tt, err := timetable.NewResolver(s, st).Timetable(time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Timetable: %v", err)
	}

	w, err := export.NewWorkbook([]export.SheetSpec{export.TimetableSheet(tt)})
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	f := reopen(t, w)
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "11.01.2024" {
		t.Fatalf("листы: %v", got)
	}
	rows, err := f.GetRows("11.01.2024")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"№", "Начало", "Конец", "Предмет", "Учителя", "Кабинеты", "Онлайн"},
		{"1", "08:00", "08:45", "Fyzika", "Jana Novakova, Peter Horvath", "Laboratorium"},
		{"2", "09:50", "10:35", "Dejepis", "Peter Horvath", "", "https://meet.example.com/dej"},
		{"3", "10:45", "11:30", "Matematika", "", "Ucebna 1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("строки (-want +got):\n%s", diff)
	}
}

func TestDirectoryWorkbook(t *testing.T) {
	s, _ := fixture.LoggedIn(t, "")
	sheets, err := export.DirectorySheets(dbi.New(s))
	if err != nil {
		t.Fatalf("DirectorySheets: %v", err)
	}
	w, err := export.NewWorkbook(sheets)
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	f := reopen(t, w)
	if diff := cmp.Diff([]string{"Учителя", "Классы", "Предметы", "Кабинеты", "Ученики"}, f.GetSheetList()); diff != "" {
		t.Fatalf("листы (-want +got):\n%s", diff)
	}

	teachers, _ := f.GetRows("Учителя")
	if len(teachers) != 4 {
		t.Fatalf("учителя: %d строк", len(teachers))
	}
	if diff := cmp.Diff([]string{"1", "Novakova", "Jana", "NJ", "Ucebna 1"}, teachers[1]); diff != "" {
		t.Fatalf("учитель 1 (-want +got):\n%s", diff)
	}
	// запись без id попадает в выгрузку с пустым ID
	if teachers[3][0] != "" || teachers[3][1] != "Record" {
		t.Fatalf("битая запись: %v", teachers[3])
	}

	classes, _ := f.GetRows("Классы")
	if diff := cmp.Diff([]string{"10", "1.A", "1", "Jana Novakova"}, classes[1]); diff != "" {
		t.Fatalf("класс (-want +got):\n%s", diff)
	}
	students, _ := f.GetRows("Ученики")
	if diff := cmp.Diff([]string{"1001", "Mala", "Eva", "2.B"}, students[2]); diff != "" {
		t.Fatalf("ученик (-want +got):\n%s", diff)
	}
}

func TestNewWorkbook_Empty(t *testing.T) {
	if _, err := export.NewWorkbook(nil); err == nil {
		t.Fatalf("ждали ошибку для пустой книги")
	}
}

func TestFilenames(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := export.BuildTimetableFilename("gym/bb", day); got != "Расписание — gym_bb — 10.01.2024.xlsx" {
		t.Fatalf("BuildTimetableFilename = %q", got)
	}
	if got := export.BuildDirectoryFilename("", 2023); got != "Справочник — — — 2023–2024.xlsx" {
		t.Fatalf("BuildDirectoryFilename = %q", got)
	}
}

func TestSchoolYear(t *testing.T) {
	cases := map[time.Time]int{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC):  2024,
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC):  2024,
		time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC): 2023,
	}
	for in, want := range cases {
		if got := export.CurrentSchoolYearStartYear(in); got != want {
			t.Fatalf("%s: %d, ждали %d", in.Format("2006-01-02"), got, want)
		}
	}
	if export.SchoolYearLabel(2024) != "2024–2025" {
		t.Fatalf("SchoolYearLabel")
	}
}
