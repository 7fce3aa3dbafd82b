package dbi

import (
	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/models"
)

// PrincipalName: имя вошедшего пользователя, если это учитель, ученик или родитель
// из справочника. Для остальных видов id и ненайденных записей — "".
func (st *Store) PrincipalName() (string, error) {
	snap, idx, err := st.current()
	if err != nil {
		return "", err
	}
	uid := snap.UserID
	switch uid.Kind {
	case codec.KindTeacher:
		if t := lookup(snap.DBI.Teachers, idx.teachers, uid.ID); t != nil {
			return t.FullName(), nil
		}
	case codec.KindStudent, codec.KindOnlyStudent:
		if s := lookup(snap.DBI.Students, idx.students, uid.ID); s != nil {
			return s.FullName(), nil
		}
	case codec.KindParent:
		if p := lookup(snap.DBI.Parents, idx.parents, uid.ID); p != nil {
			return p.FullName(), nil
		}
	}
	return "", nil
}

// ClassStudents: ученики класса в порядке справочника.
func (st *Store) ClassStudents(classID int64) ([]models.Student, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	var out []models.Student
	for _, s := range snap.DBI.Students {
		if s.ClassID.Equal(classID) {
			out = append(out, s)
		}
	}
	return out, nil
}

// StudentParents: найденные в справочнике родители ученика; неизвестные ссылки пропускаются.
func (st *Store) StudentParents(studentID int64) ([]models.Parent, error) {
	snap, idx, err := st.current()
	if err != nil {
		return nil, err
	}
	s := lookup(snap.DBI.Students, idx.students, studentID)
	if s == nil {
		return nil, nil
	}
	var out []models.Parent
	for _, id := range s.ParentIDs() {
		if p := lookup(snap.DBI.Parents, idx.parents, id); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ClassTeachers: классный руководитель и заместитель, если они есть в справочнике.
func (st *Store) ClassTeachers(classID int64) ([]models.Teacher, error) {
	snap, idx, err := st.current()
	if err != nil {
		return nil, err
	}
	c := lookup(snap.DBI.Classes, idx.classes, classID)
	if c == nil {
		return nil, nil
	}
	var out []models.Teacher
	for _, id := range []codec.OptInt{c.TeacherID, c.Teacher2ID} {
		if !id.Valid {
			continue
		}
		if t := lookup(snap.DBI.Teachers, idx.teachers, id.Int64); t != nil {
			out = append(out, *t)
		}
	}
	return out, nil
}
