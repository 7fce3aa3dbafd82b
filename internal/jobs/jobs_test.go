package jobs

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/logging"
	"github.com/Spok95/edupage-school-bot/internal/portal"
	"github.com/Spok95/edupage-school-bot/internal/testutil/fixture"
)

func TestNextAt(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 10, 6, 59, 0, 0, loc), time.Date(2024, 1, 10, 7, 0, 0, 0, loc)},
		{time.Date(2024, 1, 10, 7, 0, 0, 0, loc), time.Date(2024, 1, 11, 7, 0, 0, 0, loc)},
		{time.Date(2024, 1, 31, 23, 0, 0, 0, loc), time.Date(2024, 2, 1, 7, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		if got := nextAt(c.now, 7); !got.Equal(c.want) {
			t.Fatalf("nextAt(%v) = %v, ждали %v", c.now, got, c.want)
		}
	}
}

// fakeStore ведёт себя как запрос с LIMIT: страница по возрастанию chat_id
// после after, без уже помеченных чатов.
type fakeStore struct {
	due    []int64
	marked []int64
	day    time.Time
	pages  int
}

func (f *fakeStore) DueForDigest(_ context.Context, sub string, day time.Time, after int64, batch int) ([]int64, error) {
	if sub != fixture.Subdomain {
		return nil, nil
	}
	f.pages++
	ids := slices.Clone(f.due)
	slices.Sort(ids)
	var out []int64
	for _, id := range ids {
		if id <= after || slices.Contains(f.marked, id) {
			continue
		}
		out = append(out, id)
		if len(out) == batch {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) MarkDigestSent(_ context.Context, ids []int64, day time.Time) error {
	f.marked = append(f.marked, ids...)
	f.day = day
	return nil
}

func TestDigest_Run(t *testing.T) {
	store := &fakeStore{due: []int64{1, 2, 3}}
	sent := map[int64]string{}
	d := &Digest{
		Store:     store,
		Subdomain: fixture.Subdomain,
		Render: func(_ context.Context, day time.Time) (string, error) {
			return "Расписание на " + day.Format("02.01"), nil
		},
		Send: func(_ context.Context, chatID int64, text string) error {
			if chatID == 2 {
				return errors.New("chat not found")
			}
			sent[chatID] = text
			return nil
		},
		Now: func() time.Time { return fixture.Wednesday },
	}

	err := d.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "chat 2") {
		t.Fatalf("ждали ошибку по чату 2, получили %v", err)
	}
	if len(sent) != 2 || sent[1] != "Расписание на 10.01" {
		t.Fatalf("отправлено: %v", sent)
	}
	if len(store.marked) != 2 || store.marked[0] != 1 || store.marked[1] != 3 {
		t.Fatalf("помечены: %v", store.marked)
	}
}

func TestDigest_Weekend(t *testing.T) {
	store := &fakeStore{due: []int64{1}}
	d := &Digest{
		Store:     store,
		Subdomain: fixture.Subdomain,
		Render: func(context.Context, time.Time) (string, error) {
			t.Fatalf("в выходные рендер не нужен")
			return "", nil
		},
		Send: func(context.Context, int64, string) error { return nil },
		Now:  func() time.Time { return fixture.Saturday },
	}
	if err := d.Run(context.Background()); err != nil || len(store.marked) != 0 {
		t.Fatalf("выходной: err=%v marked=%v", err, store.marked)
	}
}

func TestDigest_RenderError(t *testing.T) {
	d := &Digest{
		Store:     &fakeStore{due: []int64{1}},
		Subdomain: fixture.Subdomain,
		Render: func(context.Context, time.Time) (string, error) {
			return "", portal.ErrMissingData
		},
		Send: func(context.Context, int64, string) error { return nil },
		Now:  func() time.Time { return fixture.Wednesday },
	}
	if err := d.Run(context.Background()); !errors.Is(err, portal.ErrMissingData) {
		t.Fatalf("ждали MissingData, получили %v", err)
	}
}

func TestDigest_AllPages(t *testing.T) {
	store := &fakeStore{}
	// группы Telegram с отрицательными id тоже подписчики
	for id := int64(-10); id < 240; id++ {
		store.due = append(store.due, id)
	}
	sent := map[int64]int{}
	renders := 0
	d := &Digest{
		Store:     store,
		Subdomain: fixture.Subdomain,
		Render: func(context.Context, time.Time) (string, error) {
			renders++
			return "Расписание", nil
		},
		Send: func(_ context.Context, chatID int64, _ string) error {
			sent[chatID]++
			return nil
		},
		Now: func() time.Time { return fixture.Wednesday },
		Log: logging.Nop().Named("digest"),
	}

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sent) != 250 || len(store.marked) != 250 {
		t.Fatalf("отправлено %d, помечено %d из 250", len(sent), len(store.marked))
	}
	for id, n := range sent {
		if n != 1 {
			t.Fatalf("чат %d получил рассылку %d раз", id, n)
		}
	}
	if renders != 1 {
		t.Fatalf("текст рендерился %d раз", renders)
	}
	if store.pages != 3 {
		t.Fatalf("страниц запрошено %d, ждали 3", store.pages)
	}
}

func TestDigest_RetriesFailedOnce(t *testing.T) {
	store := &fakeStore{due: []int64{1, 2, 3}}
	attempts := map[int64]int{}
	d := &Digest{
		Store:     store,
		Subdomain: fixture.Subdomain,
		Render:    func(context.Context, time.Time) (string, error) { return "x", nil },
		Send: func(_ context.Context, chatID int64, _ string) error {
			attempts[chatID]++
			// чат 2 падает только с первой попытки
			if chatID == 2 && attempts[chatID] == 1 {
				return errors.New("Too Many Requests")
			}
			return nil
		},
		Now: func() time.Time { return fixture.Wednesday },
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if attempts[2] != 2 || attempts[1] != 1 {
		t.Fatalf("попытки: %v", attempts)
	}
	if !slices.Contains(store.marked, 2) || len(store.marked) != 3 {
		t.Fatalf("помечены: %v", store.marked)
	}
}

func TestDigest_Location(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	cases := []struct {
		name    string
		now     time.Time
		wantDay string // пусто: выходной, рассылки нет
	}{
		// пятница 23:30 UTC, по местному времени уже суббота
		{"friday night utc", time.Date(2024, 1, 12, 23, 30, 0, 0, time.UTC), ""},
		// воскресенье 23:30 UTC, по местному уже понедельник
		{"sunday night utc", time.Date(2024, 1, 14, 23, 30, 0, 0, time.UTC), "2024-01-15"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := &fakeStore{due: []int64{1}}
			var rendered string
			d := &Digest{
				Store:     store,
				Subdomain: fixture.Subdomain,
				Render: func(_ context.Context, day time.Time) (string, error) {
					rendered = day.Format("2006-01-02")
					return "x", nil
				},
				Send:     func(context.Context, int64, string) error { return nil },
				Now:      func() time.Time { return c.now },
				Location: cet,
			}
			if err := d.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if rendered != c.wantDay {
				t.Fatalf("день рассылки %q, ждали %q", rendered, c.wantDay)
			}
		})
	}
}

func TestRelogin(t *testing.T) {
	p := fixture.NewPortal()
	s := portal.New(p, portal.WithBaseURL(func(sub string) string { return "https://" + sub + ".edupage.org" }))
	job := Relogin(s, Credentials{Subdomain: fixture.Subdomain, Username: "u", Password: "p"})
	if err := job(context.Background()); err != nil {
		t.Fatalf("relogin: %v", err)
	}
	if !s.IsLoggedIn() {
		t.Fatalf("после relogin сессия должна быть вошедшей")
	}

	p.Reject = true
	if err := job(context.Background()); !errors.Is(err, portal.ErrInvalidCredentials) {
		t.Fatalf("ждали InvalidCredentials, получили %v", err)
	}
}

func TestRetryLogin(t *testing.T) {
	p := fixture.NewPortal()
	s := portal.New(p, portal.WithBaseURL(func(sub string) string { return "https://" + sub + ".edupage.org" }))
	job := RetryLogin(s, Credentials{Subdomain: fixture.Subdomain, Username: "u", Password: "p"})

	// первый вход упал: сессия не вошла, повтор входит
	p.Err = errors.New("connection refused")
	if err := job(context.Background()); !errors.Is(err, portal.ErrHTTP) {
		t.Fatalf("ждали HTTPError, получили %v", err)
	}
	p.Err = nil
	if err := job(context.Background()); err != nil || !s.IsLoggedIn() {
		t.Fatalf("повтор: err=%v loggedIn=%v", err, s.IsLoggedIn())
	}

	// сессия уже вошла: портал не трогаем
	before := len(p.Requests())
	if err := job(context.Background()); err != nil {
		t.Fatalf("вошедшая сессия: %v", err)
	}
	if n := len(p.Requests()); n != before {
		t.Fatalf("лишние запросы к порталу: %d", n-before)
	}
}

func TestRunner_RecoversPanic(t *testing.T) {
	r := New(context.Background(), logging.Nop().Named("jobs"))
	called := false
	r.run("boom", func(context.Context) error {
		called = true
		panic("unexpected")
	})
	if !called {
		t.Fatalf("задача не запускалась")
	}
}
