package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
	"github.com/Spok95/edupage-school-bot/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *zap.Logger
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctx: ctx, log: log}
}

func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// Daily запускает fn раз в сутки в hour:00 по loc.
func (r *Runner) Daily(hour int, loc *time.Location, name string, fn Job) {
	go func() {
		for {
			wait := time.Until(nextAt(time.Now().In(loc), hour))
			t := time.NewTimer(wait)
			select {
			case <-r.ctx.Done():
				t.Stop()
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// nextAt: ближайший момент hour:00 строго после now.
func nextAt(now time.Time, hour int) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, 0, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			jobErrors.WithLabelValues(name).Inc()
			observability.CaptureErr(fmt.Errorf("panic in job %s: %v", name, p))
			r.log.Error("job panic", zap.String("job", name), zap.Any("panic", p))
		}
		jobRuns.WithLabelValues(name).Inc()
		jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	ctx := ctxutil.WithOp(r.ctx, name)
	if err := fn(ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
		observability.CaptureCtx(ctx, err)
		r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
	}
}
