// Package timetable собирает уроки дня из дневного плана снимка.
package timetable

import (
	"context"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/dbi"
	"github.com/Spok95/edupage-school-bot/internal/models"
	"github.com/Spok95/edupage-school-bot/internal/portal"
)

// Session: то, что резолверу нужно от сессии портала.
type Session interface {
	SecurityToken() (string, error)
	Request(ctx context.Context, method, target string, header map[string]string, body []byte) (*portal.Response, error)
}

type Resolver struct {
	s   Session
	dir *dbi.Store
}

func NewResolver(s Session, dir *dbi.Store) *Resolver {
	return &Resolver{s: s, dir: dir}
}

// Timetable: уроки на дату date в порядке плана.
//
// Записи без предмета в заголовке или без времени начала/конца пропускаются.
// Неизвестные учителя и кабинеты выпадают из урока. Предмет, которого нет в
// справочнике, — ошибка MissingData для всего дня. План и справочник
// читаются из одного снимка.
func (r *Resolver) Timetable(date time.Time) (*Timetable, error) {
	v, err := r.dir.View()
	if err != nil {
		return nil, err
	}
	snap := v.Snapshot()
	key := date.Format(codec.DateLayout)
	plan, ok := snap.DP.Plan(key)
	if !ok {
		return nil, portal.Errorf(portal.KindMissingData, "no daily plan for %s", key)
	}

	tt := &Timetable{Date: date}
	for _, item := range plan.Items {
		l, ok, err := resolve(v, item)
		if err != nil {
			return nil, err
		}
		if ok {
			tt.lessons = append(tt.lessons, l)
		}
	}
	return tt, nil
}

func resolve(v *dbi.View, item models.PlanItem) (Lesson, bool, error) {
	subjectID, ok := item.HeaderSubject()
	if !ok || !item.Start.Valid || !item.End.Valid {
		return Lesson{}, false, nil
	}

	var teachers []models.Teacher
	for _, id := range item.TeacherIDs.Ints {
		if t := v.Teacher(id); t != nil {
			teachers = append(teachers, *t)
		}
	}
	var rooms []models.Base
	for _, id := range item.ClassroomIDs.Ints {
		if c := v.Classroom(id); c != nil {
			rooms = append(rooms, *c)
		}
	}

	subj := v.Subject(subjectID)
	if subj == nil {
		return Lesson{}, false, portal.Errorf(portal.KindMissingData, "subject %d not in directory", subjectID)
	}

	l := Lesson{
		SubjectID:  subjectID,
		Name:       subj.Name,
		Short:      subj.Short,
		Teachers:   teachers,
		Classrooms: rooms,
		Start:      item.Start.Time,
		End:        item.End.Time,
	}
	if item.OnlineLink != nil {
		l.OnlineLink = *item.OnlineLink
	}
	return l, true, nil
}
