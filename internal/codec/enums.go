package codec

import (
	"encoding/json"
	"strings"
)

type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g *Gender) UnmarshalJSON(data []byte) error {
	s, _ := jsonString(data)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m":
		*g = GenderMale
	case "f":
		*g = GenderFemale
	default:
		*g = GenderUnknown
	}
	return nil
}

func (g Gender) MarshalJSON() ([]byte, error) {
	switch g {
	case GenderMale:
		return []byte(`"M"`), nil
	case GenderFemale:
		return []byte(`"F"`), nil
	}
	return []byte("null"), nil
}

// PlanItemKind: вид элемента дневного плана.
type PlanItemKind int

const (
	PlanKindUnknown PlanItemKind = iota
	PlanKindPeriod
	PlanKindLesson
)

func (k *PlanItemKind) UnmarshalJSON(data []byte) error {
	s, _ := jsonString(data)
	switch s {
	case "period":
		*k = PlanKindPeriod
	case "lesson":
		*k = PlanKindLesson
	default:
		*k = PlanKindUnknown
	}
	return nil
}

func (k PlanItemKind) MarshalJSON() ([]byte, error) {
	switch k {
	case PlanKindPeriod:
		return json.Marshal("period")
	case PlanKindLesson:
		return json.Marshal("lesson")
	}
	return []byte("null"), nil
}

func (k PlanItemKind) String() string {
	switch k {
	case PlanKindPeriod:
		return "period"
	case PlanKindLesson:
		return "lesson"
	}
	return "unknown"
}
