package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/dbi"
	"github.com/Spok95/edupage-school-bot/internal/models"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
)

var invalidSheetRe = regexp.MustCompile(`[\\/:*?\[\]]+`)

// TimetableSheet: лист с уроками дня.
func TimetableSheet(tt *timetable.Timetable) SheetSpec {
	s := SheetSpec{
		Title:  tt.Date.Format("02.01.2006"),
		Header: []string{"№", "Начало", "Конец", "Предмет", "Учителя", "Кабинеты", "Онлайн"},
	}
	for i, l := range tt.Lessons() {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			l.Start.Format(codec.ClockLayout),
			l.End.Format(codec.ClockLayout),
			l.Name,
			TeacherNames(l.Teachers),
			RoomNames(l.Classrooms),
			l.OnlineLink,
		})
	}
	return s
}

// DirectorySheets: справочник школы: учителя, классы, предметы, кабинеты, ученики.
func DirectorySheets(st *dbi.Store) ([]SheetSpec, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	d := v.Snapshot().DBI
	teachers, classes, subjects, rooms, students := d.Teachers, d.Classes, d.Subjects, d.Classrooms, d.Students

	ts := SheetSpec{Title: "Учителя", Header: []string{"ID", "Фамилия", "Имя", "Сокращение", "Кабинет"}}
	for _, t := range teachers {
		room := ""
		if t.ClassroomID.Valid {
			if r := v.Classroom(t.ClassroomID.Int64); r != nil {
				room = r.Name
			}
		}
		ts.Rows = append(ts.Rows, []string{optID(t.ID), t.LastName, t.FirstName, t.Short, room})
	}

	cs := SheetSpec{Title: "Классы", Header: []string{"ID", "Класс", "Параллель", "Классный руководитель"}}
	for _, c := range classes {
		head := ""
		if c.TeacherID.Valid {
			if t := v.Teacher(c.TeacherID.Int64); t != nil {
				head = t.FullName()
			}
		}
		cs.Rows = append(cs.Rows, []string{optID(c.ID), c.Name, optID(c.Grade), head})
	}

	ss := SheetSpec{Title: "Предметы", Header: []string{"ID", "Название", "Сокращение"}}
	for _, b := range subjects {
		ss.Rows = append(ss.Rows, []string{optID(b.ID), b.Name, b.Short})
	}
	rs := SheetSpec{Title: "Кабинеты", Header: []string{"ID", "Название", "Сокращение"}}
	for _, b := range rooms {
		rs.Rows = append(rs.Rows, []string{optID(b.ID), b.Name, b.Short})
	}

	us := SheetSpec{Title: "Ученики", Header: []string{"ID", "Фамилия", "Имя", "Класс", "№ в классе"}}
	for _, s := range students {
		class := ""
		if s.ClassID.Valid {
			if c := v.Class(s.ClassID.Int64); c != nil {
				class = c.Name
			}
		}
		us.Rows = append(us.Rows, []string{optID(s.ID), s.LastName, s.FirstName, class, optID(s.NumberInClass)})
	}

	return []SheetSpec{ts, cs, ss, rs, us}, nil
}

func TeacherNames(ts []models.Teacher) string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.FullName())
	}
	return strings.Join(names, ", ")
}

func RoomNames(rs []models.Base) string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func optID(v codec.OptInt) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}
