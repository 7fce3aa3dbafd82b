package jobs

import (
	"context"

	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
)

// Authenticator: сессия портала, которую можно перелогинить.
type Authenticator interface {
	Login(ctx context.Context, subdomain, username, password string) error
}

type Credentials struct {
	Subdomain string
	Username  string
	Password  string
}

// Relogin обновляет снимок повторным входом. Сам резолвер ничего не обновляет,
// свежесть данных — забота приложения.
func Relogin(a Authenticator, c Credentials) Job {
	return func(ctx context.Context) error {
		ctx = ctxutil.WithSubdomain(ctx, c.Subdomain)
		return a.Login(ctx, c.Subdomain, c.Username, c.Password)
	}
}

// SessionAuth: сессия, про которую известно, вошла ли она.
type SessionAuth interface {
	Authenticator
	IsLoggedIn() bool
}

// RetryLogin входит заново только если сессия сейчас не вошла (неудачный
// старт или упавший relogin). Запускается часто, между плановыми relogin.
func RetryLogin(a SessionAuth, c Credentials) Job {
	login := Relogin(a, c)
	return func(ctx context.Context) error {
		if a.IsLoggedIn() {
			return nil
		}
		return login(ctx)
	}
}
