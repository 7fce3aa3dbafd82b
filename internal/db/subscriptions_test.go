//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/db"
	"github.com/Spok95/edupage-school-bot/internal/testutil/testdb"
)

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}
	defer h.Close()
	database := h.DB

	created, err := db.Subscribe(ctx, database, 10, "school")
	if err != nil || !created {
		t.Fatalf("Subscribe: %v %v", created, err)
	}
	if created, _ := db.Subscribe(ctx, database, 10, "school"); created {
		t.Fatalf("повторная подписка не должна создаваться")
	}
	if _, err := db.Subscribe(ctx, database, 20, "school"); err != nil {
		t.Fatalf("Subscribe 20: %v", err)
	}
	if _, err := db.Subscribe(ctx, database, 30, "other"); err != nil {
		t.Fatalf("Subscribe 30: %v", err)
	}

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	due, err := db.DueForDigest(ctx, database, "school", day, math.MinInt64, 100)
	if err != nil {
		t.Fatalf("DueForDigest: %v", err)
	}
	if len(due) != 2 || due[0] != 10 || due[1] != 20 {
		t.Fatalf("due = %v, ждали [10 20]", due)
	}
	// постранично: первая страница из одного чата, вторая после него
	if due, _ := db.DueForDigest(ctx, database, "school", day, math.MinInt64, 1); len(due) != 1 || due[0] != 10 {
		t.Fatalf("первая страница: %v", due)
	}
	if due, _ := db.DueForDigest(ctx, database, "school", day, 10, 1); len(due) != 1 || due[0] != 20 {
		t.Fatalf("вторая страница: %v", due)
	}
	if due, _ := db.DueForDigest(ctx, database, "school", day, 20, 1); len(due) != 0 {
		t.Fatalf("после последнего чата: %v", due)
	}

	if err := db.MarkDigestSent(ctx, database, []int64{10}, day); err != nil {
		t.Fatalf("MarkDigestSent: %v", err)
	}
	due, _ = db.DueForDigest(ctx, database, "school", day, math.MinInt64, 100)
	if len(due) != 1 || due[0] != 20 {
		t.Fatalf("после отметки due = %v", due)
	}
	// на следующий день рассылка снова нужна
	due, _ = db.DueForDigest(ctx, database, "school", day.AddDate(0, 0, 1), math.MinInt64, 100)
	if len(due) != 2 {
		t.Fatalf("следующий день: due = %v", due)
	}

	s, err := db.GetSubscription(ctx, database, 10)
	if err != nil || s == nil || !s.LastDigest.Valid {
		t.Fatalf("GetSubscription: %+v %v", s, err)
	}

	removed, err := db.Unsubscribe(ctx, database, 10)
	if err != nil || !removed {
		t.Fatalf("Unsubscribe: %v %v", removed, err)
	}
	if removed, _ := db.Unsubscribe(ctx, database, 10); removed {
		t.Fatalf("повторная отписка")
	}
	if s, _ := db.GetSubscription(ctx, database, 10); s != nil {
		t.Fatalf("подписка должна быть удалена: %+v", s)
	}
}
