package models

import "github.com/Spok95/edupage-school-bot/internal/codec"

type DailyPlan struct {
	Day   int        `json:"tt_day"`
	Week  int        `json:"tt_week"`
	Items []PlanItem `json:"plan"`
}

// PlanItem: сырая запись дневного плана; почти всё в ней необязательно.
type PlanItem struct {
	ClassIDs     codec.OptIntList   `json:"classids"`
	Date         codec.Date         `json:"date"`
	Kind         codec.PlanItemKind `json:"type"`
	Header       []PlanHeader       `json:"header"`
	SubjectID    codec.OptInt       `json:"subjectid"`
	TeacherIDs   codec.OptIntList   `json:"teacherids"`
	ClassroomIDs codec.OptIntList   `json:"classroomids"`
	Start        codec.OptClock     `json:"starttime"`
	End          codec.OptClock     `json:"endtime"`
	OnlineLink   *string            `json:"ol_url"`
}

// PlanHeader: обёртка над элементом заголовка; item бывает null.
type PlanHeader struct {
	Item *PlanHeaderItem `json:"item"`
}

type PlanHeaderItem struct {
	SubjectID codec.OptInt `json:"subjectid"`
}

// HeaderSubject: id предмета из первого элемента заголовка.
// Без него запись нельзя превратить в урок.
func (p PlanItem) HeaderSubject() (int64, bool) {
	if len(p.Header) == 0 || p.Header[0].Item == nil || !p.Header[0].Item.SubjectID.Valid {
		return 0, false
	}
	return p.Header[0].Item.SubjectID.Int64, true
}
