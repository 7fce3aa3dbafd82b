package models

import (
	"strings"

	"github.com/Spok95/edupage-school-bot/internal/codec"
)

// Directory: справочник школы (dbi). Каждая коллекция может прийти объектом или пустым массивом.
type Directory struct {
	Teachers    codec.Collection[Teacher] `json:"teachers"`
	Classes     codec.Collection[Class]   `json:"classes"`
	Subjects    codec.Collection[Base]    `json:"subjects"`
	Classrooms  codec.Collection[Base]    `json:"classrooms"`
	Students    codec.Collection[Student] `json:"students"`
	Parents     codec.Collection[Parent]  `json:"parents"`
	IsArtSchool codec.Flag                `json:"jeZUS"`
}

// Base: общие поля предметов и кабинетов.
type Base struct {
	ID    codec.OptInt `json:"id"`
	Name  string       `json:"name"`
	Short string       `json:"short"`
}

type Teacher struct {
	ID          codec.OptInt `json:"id"`
	FirstName   string       `json:"firstname"`
	LastName    string       `json:"lastname"`
	Short       string       `json:"short"`
	Gender      codec.Gender `json:"gender"`
	ClassroomID codec.OptInt `json:"classroomid"`
	IsOut       codec.Flag   `json:"isOut"`
	DateFrom    codec.Date   `json:"datefrom"`
	DateTo      codec.Date   `json:"dateto"`
}

func (t Teacher) FullName() string { return fullName(t.FirstName, t.LastName) }

type Student struct {
	ID            codec.OptInt `json:"id"`
	ClassID       codec.OptInt `json:"classid"`
	FirstName     string       `json:"firstname"`
	LastName      string       `json:"lastname"`
	Parent1ID     codec.OptInt `json:"parent1id"`
	Parent2ID     codec.OptInt `json:"parent2id"`
	Parent3ID     codec.OptInt `json:"parent3id"`
	Gender        codec.Gender `json:"gender"`
	DateFrom      codec.Date   `json:"datefrom"`
	DateTo        codec.Date   `json:"dateto"`
	NumberInClass codec.OptInt `json:"numberinclass"`
}

func (s Student) FullName() string { return fullName(s.FirstName, s.LastName) }

// ParentIDs: присутствующие ссылки на родителей.
func (s Student) ParentIDs() []int64 {
	var out []int64
	for _, id := range []codec.OptInt{s.Parent1ID, s.Parent2ID, s.Parent3ID} {
		if id.Valid {
			out = append(out, id.Int64)
		}
	}
	return out
}

type Parent struct {
	ID        codec.OptInt `json:"id"`
	FirstName string       `json:"firstname"`
	LastName  string       `json:"lastname"`
	Gender    codec.Gender `json:"gender"`
}

func (p Parent) FullName() string { return fullName(p.FirstName, p.LastName) }

type Class struct {
	ID          codec.OptInt `json:"id"`
	Name        string       `json:"name"`
	Short       string       `json:"short"`
	Grade       codec.OptInt `json:"grade"`
	TeacherID   codec.OptInt `json:"teacherid"`
	Teacher2ID  codec.OptInt `json:"teacher2id"`
	ClassroomID codec.OptInt `json:"classroomid"`
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
