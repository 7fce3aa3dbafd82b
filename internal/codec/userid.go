package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type UserKind int

const (
	KindInvalid UserKind = iota
	KindTeacher
	KindStudent
	KindParent
	KindClass
	KindPlan
	KindCustomPlan
	KindStudentClass
	KindStudentPlan
	KindOnlyStudent
	// без идентификатора
	KindAllStudents
	KindOnlyAllStudents
	KindAllTeachers
	KindEveryone
)

var kindTags = map[UserKind]string{
	KindTeacher:      "Ucitel",
	KindStudent:      "Student",
	KindParent:       "Rodic",
	KindClass:        "Trieda",
	KindPlan:         "Plan",
	KindCustomPlan:   "CustPlan",
	KindStudentClass: "StudTrieda",
	KindStudentPlan:  "StudPlan",
	KindOnlyStudent:  "StudentOnly",
}

var wildcardLiterals = map[UserKind]string{
	KindAllStudents:     "Student*",
	KindOnlyAllStudents: "StudentOnly*",
	KindAllTeachers:     "Ucitel*",
	KindEveryone:        "*",
}

var (
	tagKinds      = invert(kindTags)
	wildcardKinds = invert(wildcardLiterals)
)

func invert(m map[UserKind]string) map[string]UserKind {
	out := make(map[string]UserKind, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// UserID: идентичность пользователя портала: тег типа + число («Ucitel123») либо групповой литерал («Student*»).
type UserID struct {
	Kind UserKind
	ID   int64
}

var (
	AllStudents     = UserID{Kind: KindAllStudents}
	OnlyAllStudents = UserID{Kind: KindOnlyAllStudents}
	AllTeachers     = UserID{Kind: KindAllTeachers}
	Everyone        = UserID{Kind: KindEveryone}
)

func Teacher(id int64) UserID      { return UserID{Kind: KindTeacher, ID: id} }
func Student(id int64) UserID      { return UserID{Kind: KindStudent, ID: id} }
func Parent(id int64) UserID       { return UserID{Kind: KindParent, ID: id} }
func Class(id int64) UserID        { return UserID{Kind: KindClass, ID: id} }
func Plan(id int64) UserID         { return UserID{Kind: KindPlan, ID: id} }
func CustomPlan(id int64) UserID   { return UserID{Kind: KindCustomPlan, ID: id} }
func StudentClass(id int64) UserID { return UserID{Kind: KindStudentClass, ID: id} }
func StudentPlan(id int64) UserID  { return UserID{Kind: KindStudentPlan, ID: id} }
func OnlyStudent(id int64) UserID  { return UserID{Kind: KindOnlyStudent, ID: id} }

func (u UserID) IsWildcard() bool {
	_, ok := wildcardLiterals[u.Kind]
	return ok
}

func (u UserID) IsZero() bool { return u.Kind == KindInvalid }

func (u UserID) String() string {
	if lit, ok := wildcardLiterals[u.Kind]; ok {
		return lit
	}
	if tag, ok := kindTags[u.Kind]; ok {
		return tag + strconv.FormatInt(u.ID, 10)
	}
	return ""
}

// ParseUserID: обратная к String. Неизвестный тег — жёсткая ошибка:
// молча неверно распознанная группа пользователей опаснее упавшего разбора.
func ParseUserID(s string) (UserID, error) {
	if k, ok := wildcardKinds[s]; ok {
		return UserID{Kind: k}, nil
	}
	i := 0
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	tag, digits := s[:i], s[i:]
	kind, ok := tagKinds[tag]
	if !ok {
		return UserID{}, fmt.Errorf("codec: %w: %q", ErrUnknownUserKind, s)
	}
	if !isSignedDigits(digits) {
		return UserID{}, &ParseError{What: "user id", Value: s, Err: ErrBadUserID}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return UserID{}, &ParseError{What: "user id", Value: s, Err: err}
	}
	return UserID{Kind: kind, ID: id}, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSignedDigits(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return parseErr("user id", data, ErrShape)
	}
	v, err := ParseUserID(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u UserID) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(u.String())
}

// OptUserID: необязательная ссылка на пользователя; если значение есть, оно разбирается строго.
type OptUserID struct {
	UserID
	Valid bool
}

func (o *OptUserID) UnmarshalJSON(data []byte) error {
	*o = OptUserID{}
	s, ok := jsonString(data)
	if !ok || s == "" {
		return nil
	}
	v, err := ParseUserID(s)
	if err != nil {
		return err
	}
	*o = OptUserID{UserID: v, Valid: true}
	return nil
}

func (o OptUserID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return o.UserID.MarshalJSON()
}
