package codec

import "encoding/json"

// TimelineItemType: тип записи ленты. Портал со временем добавляет новые типы,
// поэтому незнакомое имя даёт TimelineUnknown, а не ошибку.
type TimelineItemType int

const (
	TimelineUnknown TimelineItemType = iota
	TimelineNews
	TimelineMessage
	TimelineHintDailyPlan
	TimelineStudentAbsent
	TimelineConfirmation
	TimelineHintClearPlans
	TimelineHintFinances
	TimelineHintLunchMenu
	TimelineHintClearISIC
	TimelineSubstitution
	TimelineHintClearCache
	TimelineEvent
	TimelineHintHomework
	TimelineGrade
	TimelineHintSubstitution
	TimelineHintGrades
	TimelineHomework
	TimelineHintClearDBI
	TimelineTestAssignment
)

// порядок совпадает с константами выше
var timelineTypeNames = [...]string{
	TimelineNews:             "news",
	TimelineMessage:          "sprava",
	TimelineHintDailyPlan:    "h_dailyplan",
	TimelineStudentAbsent:    "student_absent",
	TimelineConfirmation:     "confirmation",
	TimelineHintClearPlans:   "h_clearplany",
	TimelineHintFinances:     "h_financie",
	TimelineHintLunchMenu:    "h_stravamenu",
	TimelineHintClearISIC:    "h_clearisicdata",
	TimelineSubstitution:     "substitution",
	TimelineHintClearCache:   "h_clearcache",
	TimelineEvent:            "event",
	TimelineHintHomework:     "h_homework",
	TimelineGrade:            "znamka",
	TimelineHintSubstitution: "h_substitution",
	TimelineHintGrades:       "h_znamky",
	TimelineHomework:         "homework",
	TimelineHintClearDBI:     "h_cleardbi",
	TimelineTestAssignment:   "testpridelenie",
}

func ParseTimelineItemType(name string) TimelineItemType {
	for i, n := range timelineTypeNames {
		if i != int(TimelineUnknown) && n == name {
			return TimelineItemType(i)
		}
	}
	return TimelineUnknown
}

// String возвращает имя типа в кодировке портала; для TimelineUnknown — "unknown".
func (t TimelineItemType) String() string {
	if t <= TimelineUnknown || int(t) >= len(timelineTypeNames) {
		return "unknown"
	}
	return timelineTypeNames[t]
}

func (t *TimelineItemType) UnmarshalJSON(data []byte) error {
	s, _ := jsonString(data)
	*t = ParseTimelineItemType(s)
	return nil
}

func (t TimelineItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
