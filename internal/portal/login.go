package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/metrics"
	"github.com/Spok95/edupage-school-bot/internal/models"
)

const (
	loginPagePath   = "/login/index.php"
	loginSubmitPath = "/login/edubarLogin.php"

	csrfField       = "csrfauth"
	csrfMarker      = `name="csrfauth" value="`
	badLoginMarker  = "bad=1"
	readyMarker     = "$j(document).ready(function() {"
	snapshotMarker  = "userhome("
	tokenMarker     = `gsechash="`
	scriptEndMarker = "</script>"
)

// Login выполняет вход: страница входа → csrf-токен → POST формы → снимок и gsechash из ответа.
// При любой ошибке сессия остаётся невошедшей; повторов нет, это решает вызывающий.
func (s *Session) Login(ctx context.Context, subdomain, username, password string) error {
	s.mu.Lock()
	if s.authenticating {
		s.mu.Unlock()
		return Errorf(KindOther, "login already in progress")
	}
	s.authenticating = true
	s.mu.Unlock()

	snap, token, err := s.handshake(ctx, subdomain, username, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticating = false
	if err != nil {
		s.loggedIn = false
		s.subdomain = ""
		s.securityToken = ""
		s.snapshot = nil
		metrics.ObserveLogin(KindOf(err).String())
		s.log.Warn("edupage login failed", zap.String("subdomain", subdomain), zap.Error(err))
		return err
	}
	s.loggedIn = true
	s.subdomain = subdomain
	s.securityToken = token
	s.snapshot = snap
	metrics.ObserveLogin("ok")
	s.log.Info("edupage login ok",
		zap.String("subdomain", subdomain),
		zap.Stringer("user", snap.UserID),
		zap.Int("plans", len(snap.DP.Dates)),
	)
	return nil
}

func (s *Session) handshake(ctx context.Context, subdomain, username, password string) (*models.Snapshot, string, error) {
	base := strings.TrimRight(s.baseURL(subdomain), "/")

	page, err := s.t.Do(ctx, &Request{Method: http.MethodGet, URL: base + loginPagePath})
	if err != nil {
		return nil, "", NewError(KindHTTP, "login page", err)
	}
	csrf, err := ExtractCSRF(page.Body)
	if err != nil {
		return nil, "", err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set(csrfField, csrf)
	resp, err := s.t.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    base + loginSubmitPath,
		Header: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
		Body:   []byte(form.Encode()),
	})
	if err != nil {
		return nil, "", NewError(KindHTTP, "login submit", err)
	}
	if rejected(resp) {
		return nil, "", ErrInvalidCredentials
	}

	snap, err := ExtractSnapshot(resp.Body)
	if err != nil {
		return nil, "", err
	}
	token, err := ExtractSecurityToken(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return snap, token, nil
}

// портал отвечает на неверный пароль редиректом с bad=1
func rejected(resp *Response) bool {
	if resp.URL != nil && strings.Contains(resp.URL.String(), badLoginMarker) {
		return true
	}
	return strings.Contains(resp.Header.Get("Location"), badLoginMarker)
}

// ExtractCSRF ищет скрытое поле csrfauth формы входа.
func ExtractCSRF(html []byte) (string, error) {
	if !bytes.Contains(html, []byte(csrfMarker)) {
		return "", NewError(KindInvalidResponse, "login page has no csrfauth field", nil)
	}
	v, ok := between(html, csrfMarker, `"`)
	if !ok {
		return "", NewError(KindParse, "failed to parse csrf token", nil)
	}
	return v, nil
}

// ExtractSecurityToken ищет присваивание gsechash="..." в странице после входа.
func ExtractSecurityToken(html []byte) (string, error) {
	v, ok := between(html, tokenMarker, `"`)
	if !ok || v == "" {
		return "", NewError(KindParse, "security token (gsechash) not found", nil)
	}
	return v, nil
}

// ExtractSnapshot декодирует ровно один JSON-объект сразу после userhome(
// внутри блока $j(document).ready. Вызовы userhome( до этого блока не учитываются.
// HTML целиком не разбирается, только поиск подстроки.
func ExtractSnapshot(html []byte) (*models.Snapshot, error) {
	r := bytes.Index(html, []byte(readyMarker))
	if r < 0 {
		return nil, NewError(KindParse, "document ready block not found", nil)
	}
	seg := html[r+len(readyMarker):]
	i := bytes.Index(seg, []byte(snapshotMarker))
	if i < 0 {
		return nil, NewError(KindParse, "snapshot marker not found", nil)
	}
	seg = seg[i+len(snapshotMarker):]
	if j := bytes.Index(seg, []byte(scriptEndMarker)); j >= 0 {
		seg = seg[:j]
	}
	// портал вставляет в скрипт сырые переводы строк и табуляции
	seg = bytes.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return -1
		}
		return r
	}, seg)

	var snap models.Snapshot
	if err := json.NewDecoder(bytes.NewReader(seg)).Decode(&snap); err != nil {
		return nil, NewError(KindParse, "decode snapshot", err)
	}
	return &snap, nil
}

func between(b []byte, start, end string) (string, bool) {
	i := bytes.Index(b, []byte(start))
	if i < 0 {
		return "", false
	}
	rest := b[i+len(start):]
	j := bytes.Index(rest, []byte(end))
	if j < 0 {
		return "", false
	}
	return string(rest[:j]), true
}
