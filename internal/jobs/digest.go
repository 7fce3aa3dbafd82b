package jobs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

const digestBatch = 100

// DigestStore: подписки на утреннюю рассылку. DueForDigest отдаёт страницу
// чатов с chat_id > after по возрастанию.
type DigestStore interface {
	DueForDigest(ctx context.Context, subdomain string, day time.Time, after int64, batch int) ([]int64, error)
	MarkDigestSent(ctx context.Context, chatIDs []int64, day time.Time) error
}

// Digest: утренняя рассылка расписания на день.
type Digest struct {
	Store     DigestStore
	Subdomain string
	Render    func(ctx context.Context, day time.Time) (string, error)
	Send      func(ctx context.Context, chatID int64, text string) error
	Now       func() time.Time
	Location  *time.Location // зона для дня и выходных; при nil берётся зона из Now
	Log       *zap.Logger
}

type sendFailure struct {
	chatID int64
	err    error
}

// Run проходит всех подписчиков постранично. Чаты, на которых отправка упала,
// получают одну повторную попытку в конце прогона; неотправленные остаются
// непомеченными.
func (d *Digest) Run(ctx context.Context) error {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	day := now()
	if d.Location != nil {
		day = day.In(d.Location)
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return nil
	}

	var (
		text     string
		rendered bool
		errs     []error
		failed   []sendFailure
		sent     int
	)
	after := int64(math.MinInt64)
	for {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		// 1) Кому слать
		chats, err := d.Store.DueForDigest(ctx, d.Subdomain, day, after, digestBatch)
		if err != nil {
			errs = append(errs, fmt.Errorf("due for digest: %w", err))
			break
		}
		if len(chats) == 0 {
			break
		}

		// 2) Текст один на всех
		if !rendered {
			if text, err = d.Render(ctx, day); err != nil {
				return fmt.Errorf("render digest: %w", err)
			}
			rendered = true
		}

		// 3) Отправка и пометка
		done, bad := d.deliver(ctx, chats, text)
		failed = append(failed, bad...)
		sent += len(done)
		if err := d.mark(ctx, done, day); err != nil {
			errs = append(errs, err)
		}

		after = chats[len(chats)-1]
		if len(chats) < digestBatch {
			break
		}
	}

	// 4) Повтор для упавших
	if len(failed) > 0 && ctx.Err() == nil {
		ids := make([]int64, 0, len(failed))
		for _, f := range failed {
			ids = append(ids, f.chatID)
		}
		var done []int64
		done, failed = d.deliver(ctx, ids, text)
		sent += len(done)
		if err := d.mark(ctx, done, day); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range failed {
		errs = append(errs, fmt.Errorf("chat %d: %w", f.chatID, f.err))
	}

	log.Info("digest sent", zap.Int("ok", sent), zap.Int("failed", len(failed)))
	return errors.Join(errs...)
}

func (d *Digest) deliver(ctx context.Context, chats []int64, text string) ([]int64, []sendFailure) {
	done := make([]int64, 0, len(chats))
	var bad []sendFailure
	for _, id := range chats {
		if err := d.Send(ctx, id, text); err != nil {
			bad = append(bad, sendFailure{chatID: id, err: err})
			continue
		}
		done = append(done, id)
	}
	return done, bad
}

func (d *Digest) mark(ctx context.Context, done []int64, day time.Time) error {
	if len(done) == 0 {
		return nil
	}
	if err := d.Store.MarkDigestSent(ctx, done, day); err != nil {
		return fmt.Errorf("mark digest: %w", err)
	}
	return nil
}
