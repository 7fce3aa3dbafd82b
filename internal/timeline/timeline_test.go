package timeline_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/models"
	"github.com/Spok95/edupage-school-bot/internal/portal"
	"github.com/Spok95/edupage-school-bot/internal/testutil/fixture"
	"github.com/Spok95/edupage-school-bot/internal/timeline"
)

func ids(items []models.TimelineItem) []int64 {
	var out []int64
	for _, it := range items {
		out = append(out, int64(it.ID))
	}
	return out
}

func TestTimeline_Filters(t *testing.T) {
	s, _ := fixture.LoggedIn(t, "")
	tl := timeline.New(s)

	cases := []struct {
		name string
		get  func() ([]models.TimelineItem, error)
		want []int64
	}{
		{"all", tl.All, []int64{501, 502, 503, 504}},
		{"news", func() ([]models.TimelineItem, error) { return tl.ByType(codec.TimelineNews) }, []int64{501}},
		{"unknown", func() ([]models.TimelineItem, error) { return tl.ByType(codec.TimelineUnknown) }, []int64{503}},
		{"none", func() ([]models.TimelineItem, error) { return tl.ByType(codec.TimelineGrade) }, nil},
		{"several", func() ([]models.TimelineItem, error) {
			return tl.ByTypes(codec.TimelineMessage, codec.TimelineSubstitution)
		}, []int64{502, 504}},
		{"for teacher 1", func() ([]models.TimelineItem, error) { return tl.For(codec.Teacher(1)) }, []int64{501, 504}},
		{"for class 10", func() ([]models.TimelineItem, error) { return tl.For(codec.Class(10)) }, []int64{501, 502}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := c.get()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if diff := cmp.Diff(c.want, ids(items)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimeline_NotLoggedIn(t *testing.T) {
	tl := timeline.New(portal.New(fixture.NewPortal()))
	if _, err := tl.ByType(codec.TimelineNews); !errors.Is(err, portal.ErrNotLoggedIn) {
		t.Fatalf("ждали NotLoggedIn, получили %v", err)
	}
}
