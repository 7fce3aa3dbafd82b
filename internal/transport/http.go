package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
	"github.com/Spok95/edupage-school-bot/internal/metrics"
	"github.com/Spok95/edupage-school-bot/internal/observability"
	"github.com/Spok95/edupage-school-bot/internal/portal"
)

const (
	userAgent   = "Mozilla/5.0 (X11; Linux x86_64) edupage-school-bot"
	maxBodySize = 32 << 20
)

// HTTP: рабочий транспорт портала: net/http + cookie jar.
// Один экземпляр на сессию, иначе сессии перепутают cookie.
type HTTP struct {
	client *http.Client
	log    *zap.Logger
}

var _ portal.Transport = (*HTTP)(nil)

func New(timeout time.Duration, log *zap.Logger) (*HTTP, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{
		client: &http.Client{Jar: jar, Timeout: timeout},
		log:    log,
	}, nil
}

func (h *HTTP) Do(ctx context.Context, r *portal.Request) (*portal.Response, error) {
	op := ctxutil.OpOr(ctx, "portal")
	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		metrics.ObservePortal(r.Method, op, 0, time.Since(start))
		if isSystemErr(err, 0) {
			observability.CaptureCtx(ctx, err)
		}
		h.log.Warn("portal request failed", zap.String("op", op), zap.String("method", r.Method), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	metrics.ObservePortal(r.Method, op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if isSystemErr(nil, resp.StatusCode) {
		observability.CaptureCtx(ctx, fmt.Errorf("portal %s %s: status %d", r.Method, resp.Request.URL.Path, resp.StatusCode))
	}
	h.log.Debug("portal request",
		zap.String("op", op),
		zap.String("method", r.Method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	return &portal.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		URL:        resp.Request.URL,
	}, nil
}

// Считаем системными: 5xx, 429, таймауты. 4xx портала в Sentry не шлём.
func isSystemErr(err error, status int) bool {
	if status == http.StatusTooManyRequests || status >= 500 {
		return true
	}
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
