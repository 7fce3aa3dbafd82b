// Package timeline: выборки из ленты уведомлений снимка.
package timeline

import (
	"slices"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/models"
)

type Source interface {
	Snapshot() (*models.Snapshot, error)
}

type Timeline struct {
	src Source
}

func New(src Source) *Timeline { return &Timeline{src: src} }

// All: вся лента в порядке снимка.
func (tl *Timeline) All() ([]models.TimelineItem, error) {
	return tl.filter(func(models.TimelineItem) bool { return true })
}

func (tl *Timeline) ByType(t codec.TimelineItemType) ([]models.TimelineItem, error) {
	return tl.filter(func(it models.TimelineItem) bool { return it.Type == t })
}

func (tl *Timeline) ByTypes(ts ...codec.TimelineItemType) ([]models.TimelineItem, error) {
	return tl.filter(func(it models.TimelineItem) bool { return slices.Contains(ts, it.Type) })
}

// For: записи, адресованные пользователю: напрямую, через wildcard его вида или всем.
func (tl *Timeline) For(uid codec.UserID) ([]models.TimelineItem, error) {
	return tl.filter(func(it models.TimelineItem) bool {
		if !it.TargetUser.Valid {
			return false
		}
		return addressed(it.TargetUser.UserID, uid)
	})
}

func addressed(target, uid codec.UserID) bool {
	if !target.IsWildcard() {
		return target == uid
	}
	switch target.Kind {
	case codec.KindEveryone:
		return true
	case codec.KindAllTeachers:
		return uid.Kind == codec.KindTeacher
	case codec.KindAllStudents:
		return uid.Kind == codec.KindStudent || uid.Kind == codec.KindOnlyStudent || uid.Kind == codec.KindParent
	case codec.KindOnlyAllStudents:
		return uid.Kind == codec.KindStudent || uid.Kind == codec.KindOnlyStudent
	}
	return false
}

func (tl *Timeline) filter(keep func(models.TimelineItem) bool) ([]models.TimelineItem, error) {
	snap, err := tl.src.Snapshot()
	if err != nil {
		return nil, err
	}
	var out []models.TimelineItem
	for _, it := range snap.Items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}
