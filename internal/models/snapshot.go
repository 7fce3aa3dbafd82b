package models

import "github.com/Spok95/edupage-school-bot/internal/codec"

// Snapshot: состояние портала для вошедшего пользователя, аргумент userhome(...) на странице после входа.
// После разбора не изменяется; при повторном входе заменяется целиком.
type Snapshot struct {
	UserID          codec.UserID      `json:"userid"`
	DBI             Directory         `json:"dbi"`
	Items           []TimelineItem    `json:"items"`
	DP              DailyPlans        `json:"dp"`
	Ringing         []RingingInterval `json:"zvonenia"`
	NamedayToday    string            `json:"meninyDnes"`
	NamedayTomorrow string            `json:"meninyZajtra"`
}

// DailyPlans: дневные планы по ключу YYYY-MM-DD.
type DailyPlans struct {
	Dates      codec.Keyed[DailyPlan] `json:"dates"`
	SchoolYear codec.OptInt           `json:"year"`
}

// Plan возвращает план на дату (ключ в формате codec.DateLayout).
func (d DailyPlans) Plan(key string) (DailyPlan, bool) {
	p, ok := d.Dates[key]
	return p, ok
}
