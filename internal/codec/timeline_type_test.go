package codec

import (
	"encoding/json"
	"testing"
)

func TestTimelineItemType_Total(t *testing.T) {
	for _, s := range []string{"", "whatever", "NEWS", "h_new_feature_2030"} {
		if got := ParseTimelineItemType(s); got != TimelineUnknown {
			t.Fatalf("%q: ожидали Unknown, получили %v", s, got)
		}
	}
}

func TestTimelineItemType_RoundTrip(t *testing.T) {
	for ty := TimelineNews; ty <= TimelineTestAssignment; ty++ {
		name := ty.String()
		if got := ParseTimelineItemType(name); got != ty {
			t.Fatalf("%q: ожидали %d, получили %d", name, ty, got)
		}
	}
	if TimelineTestAssignment.String() != "testpridelenie" || TimelineMessage.String() != "sprava" {
		t.Fatal("таблица имён сдвинулась")
	}
}

func TestTimelineItemType_JSON(t *testing.T) {
	var v struct {
		Typ TimelineItemType `json:"typ"`
	}
	if err := json.Unmarshal([]byte(`{"typ":"znamka"}`), &v); err != nil || v.Typ != TimelineGrade {
		t.Fatalf("ожидали Grade, получили %v (%v)", v.Typ, err)
	}
	if err := json.Unmarshal([]byte(`{"typ":12}`), &v); err != nil || v.Typ != TimelineUnknown {
		t.Fatalf("ожидали Unknown без ошибки, получили %v (%v)", v.Typ, err)
	}
}
