package fixture

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/Spok95/edupage-school-bot/internal/portal"
)

const (
	Subdomain = "testschool"
	BaseURL   = "https://testschool.edupage.org"
)

// Handler отвечает на запрос к пути, не относящемуся ко входу.
type Handler func(req *portal.Request) (*portal.Response, error)

// Portal: фейковый транспорт: отдаёт страницу входа, принимает форму и
// пишет все запросы в журнал.
type Portal struct {
	CSRF     string
	Home     string
	Reject   bool
	Err      error // ошибка транспорта на любой запрос
	Handlers map[string]Handler

	mu       sync.Mutex
	requests []portal.Request
}

var _ portal.Transport = (*Portal)(nil)

// NewPortal: портал, на котором вход с фикстурным снимком проходит успешно.
func NewPortal() *Portal {
	return &Portal{
		CSRF:     DefaultCSRF,
		Home:     HomePage(SnapshotJSON, DefaultHash),
		Handlers: map[string]Handler{},
	}
}

func (p *Portal) Do(_ context.Context, req *portal.Request) (*portal.Response, error) {
	p.mu.Lock()
	p.requests = append(p.requests, *req)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	switch u.Path {
	case "/login/index.php":
		return HTML(u, LoginPage(p.CSRF)), nil
	case "/login/edubarLogin.php":
		if p.Reject {
			final, _ := url.Parse(BaseURL + "/login/?bad=1")
			return HTML(final, LoginPage(p.CSRF)), nil
		}
		final, _ := url.Parse(BaseURL + "/user/")
		return HTML(final, p.Home), nil
	}
	if h, ok := p.Handlers[u.Path]; ok {
		return h(req)
	}
	return &portal.Response{StatusCode: http.StatusNotFound, Header: http.Header{}, URL: u}, nil
}

// Requests: копия журнала запросов.
func (p *Portal) Requests() []portal.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]portal.Request(nil), p.requests...)
}

// HTML: ответ 200 с телом.
func HTML(u *url.URL, body string) *portal.Response {
	return &portal.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte(body),
		URL:        u,
	}
}

// LoggedIn: сессия после успешного входа на фейковый портал со снимком snapshot
// (пустая строка — SnapshotJSON).
func LoggedIn(t testing.TB, snapshot string) (*portal.Session, *Portal) {
	t.Helper()
	if snapshot == "" {
		snapshot = SnapshotJSON
	}
	p := NewPortal()
	p.Home = HomePage(snapshot, DefaultHash)
	s := portal.New(p, portal.WithBaseURL(func(sub string) string { return "https://" + sub + ".edupage.org" }))
	if err := s.Login(context.Background(), Subdomain, "user", "secret"); err != nil {
		t.Fatalf("fixture login: %v", err)
	}
	return s, p
}
