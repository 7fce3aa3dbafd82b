package dbi

import "github.com/Spok95/edupage-school-bot/internal/models"

// View: справочник одного снимка. Повторный вход во время работы с View
// её не меняет, поэтому план и справочник берутся из одного и того же снимка.
type View struct {
	snap *models.Snapshot
	idx  *index
}

func (st *Store) View() (*View, error) {
	snap, idx, err := st.current()
	if err != nil {
		return nil, err
	}
	return &View{snap: snap, idx: idx}, nil
}

func (v *View) Snapshot() *models.Snapshot { return v.snap }

func (v *View) Teacher(id int64) *models.Teacher {
	return lookup(v.snap.DBI.Teachers, v.idx.teachers, id)
}

func (v *View) Student(id int64) *models.Student {
	return lookup(v.snap.DBI.Students, v.idx.students, id)
}

func (v *View) Parent(id int64) *models.Parent {
	return lookup(v.snap.DBI.Parents, v.idx.parents, id)
}

func (v *View) Class(id int64) *models.Class {
	return lookup(v.snap.DBI.Classes, v.idx.classes, id)
}

func (v *View) Subject(id int64) *models.Base {
	return lookup(v.snap.DBI.Subjects, v.idx.subjects, id)
}

func (v *View) Classroom(id int64) *models.Base {
	return lookup(v.snap.DBI.Classrooms, v.idx.classrooms, id)
}
