package portal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/models"
)

const DefaultDomain = "edupage.org"

type State int

const (
	LoggedOut State = iota
	Authenticating
	LoggedIn
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case LoggedIn:
		return "logged_in"
	}
	return "logged_out"
}

// Session: одна авторизованная сессия на портале. Глобального состояния нет:
// в процессе может жить сколько угодно независимых сессий.
type Session struct {
	t       Transport
	log     *zap.Logger
	baseURL func(subdomain string) string

	mu             sync.RWMutex
	authenticating bool
	loggedIn       bool
	subdomain      string
	securityToken  string
	snapshot       *models.Snapshot
}

type Option func(*Session)

// WithDomain: домен портала, по умолчанию edupage.org.
func WithDomain(domain string) Option {
	return func(s *Session) {
		s.baseURL = func(sub string) string { return "https://" + sub + "." + domain }
	}
}

// WithBaseURL полностью заменяет построение адреса (тесты, прокси).
func WithBaseURL(fn func(subdomain string) string) Option {
	return func(s *Session) { s.baseURL = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(t Transport, opts ...Option) *Session {
	s := &Session{t: t, log: zap.NewNop()}
	WithDomain(DefaultDomain)(s)
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.authenticating:
		return Authenticating
	case s.loggedIn:
		return LoggedIn
	}
	return LoggedOut
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Snapshot возвращает разобранный снимок. Снимок не меняется, его можно читать без блокировок.
func (s *Session) Snapshot() (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loggedIn || s.snapshot == nil {
		return nil, ErrNotLoggedIn
	}
	return s.snapshot, nil
}

func (s *Session) SecurityToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loggedIn || s.securityToken == "" {
		return "", ErrNotLoggedIn
	}
	return s.securityToken, nil
}

func (s *Session) Subdomain() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loggedIn || s.subdomain == "" {
		return "", ErrNotLoggedIn
	}
	return s.subdomain, nil
}

// Logout только забывает состояние; на портал ничего не отправляется.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.subdomain = ""
	s.securityToken = ""
	s.snapshot = nil
}

// Request: авторизованный запрос для пакетов поверх сессии. Относительный путь
// разрешается от адреса школы. Ответ возвращается как есть, без интерпретации.
func (s *Session) Request(ctx context.Context, method, target string, header map[string]string, body []byte) (*Response, error) {
	sub, err := s.Subdomain()
	if err != nil {
		return nil, err
	}
	req := &Request{Method: method, URL: s.resolve(sub, target), Body: body}
	if len(header) > 0 {
		req.Header = make(map[string][]string, len(header))
		for k, v := range header {
			req.Header.Set(k, v)
		}
	}
	resp, err := s.t.Do(ctx, req)
	if err != nil {
		return nil, NewError(KindHTTP, fmt.Sprintf("%s %s", method, req.URL), err)
	}
	return resp, nil
}

func (s *Session) resolve(sub, target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return strings.TrimRight(s.baseURL(sub), "/") + "/" + strings.TrimLeft(target, "/")
}
