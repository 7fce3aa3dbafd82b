// Package dbi: справочник школы из снимка: списки и поиск по id.
package dbi

import (
	"slices"
	"sync"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/models"
)

// Source: откуда брать текущий снимок; *portal.Session подходит.
type Source interface {
	Snapshot() (*models.Snapshot, error)
}

// Store читает справочник из текущего снимка сессии. Индексы строятся лениво
// и перестраиваются, когда после повторного входа меняется снимок.
type Store struct {
	src Source

	mu   sync.Mutex
	snap *models.Snapshot
	idx  *index
}

func New(src Source) *Store {
	return &Store{src: src}
}

type index struct {
	teachers   map[int64]int
	students   map[int64]int
	parents    map[int64]int
	classes    map[int64]int
	subjects   map[int64]int
	classrooms map[int64]int
}

func (st *Store) current() (*models.Snapshot, *index, error) {
	snap, err := st.src.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.snap != snap || st.idx == nil {
		d := snap.DBI
		st.idx = &index{
			teachers:   positions(d.Teachers, func(t models.Teacher) codec.OptInt { return t.ID }),
			students:   positions(d.Students, func(s models.Student) codec.OptInt { return s.ID }),
			parents:    positions(d.Parents, func(p models.Parent) codec.OptInt { return p.ID }),
			classes:    positions(d.Classes, func(c models.Class) codec.OptInt { return c.ID }),
			subjects:   positions(d.Subjects, baseID),
			classrooms: positions(d.Classrooms, baseID),
		}
		st.snap = snap
	}
	return snap, st.idx, nil
}

func baseID(b models.Base) codec.OptInt { return b.ID }

// positions: id → позиция в коллекции. Записи без id не индексируются,
// при дублях выигрывает первая.
func positions[T any](items []T, id func(T) codec.OptInt) map[int64]int {
	m := make(map[int64]int, len(items))
	for i, it := range items {
		v := id(it)
		if !v.Valid {
			continue
		}
		if _, dup := m[v.Int64]; !dup {
			m[v.Int64] = i
		}
	}
	return m
}

func lookup[T any](items []T, pos map[int64]int, id int64) *T {
	i, ok := pos[id]
	if !ok {
		return nil
	}
	v := items[i]
	return &v
}

func (st *Store) Teachers() ([]models.Teacher, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Teachers), nil
}

func (st *Store) Students() ([]models.Student, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Students), nil
}

func (st *Store) Parents() ([]models.Parent, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Parents), nil
}

func (st *Store) Classes() ([]models.Class, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Classes), nil
}

func (st *Store) Subjects() ([]models.Base, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Subjects), nil
}

func (st *Store) Classrooms() ([]models.Base, error) {
	snap, _, err := st.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.DBI.Classrooms), nil
}

// TeacherByID возвращает копию записи или nil, если учителя с таким id нет.
func (st *Store) TeacherByID(id int64) (*models.Teacher, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Teacher(id), nil
}

func (st *Store) StudentByID(id int64) (*models.Student, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Student(id), nil
}

func (st *Store) ParentByID(id int64) (*models.Parent, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Parent(id), nil
}

func (st *Store) ClassByID(id int64) (*models.Class, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Class(id), nil
}

func (st *Store) SubjectByID(id int64) (*models.Base, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Subject(id), nil
}

func (st *Store) ClassroomByID(id int64) (*models.Base, error) {
	v, err := st.View()
	if err != nil {
		return nil, err
	}
	return v.Classroom(id), nil
}
