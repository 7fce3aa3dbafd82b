package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// EduPage
	Subdomain   string
	Username    string
	Password    string
	Domain      string
	HTTPTimeout time.Duration

	// бот и инфраструктура
	BotToken       string
	DatabaseURL    string // пусто — подписки на рассылку отключены
	AllowedChatIDs []int64
	Location       *time.Location
	HTTPAddr       string
	LogLevel       string
	Env            string // dev|prod
	SentryDSN      string

	// фоновые задачи
	DigestHour         int
	ReloginInterval    time.Duration
	LoginRetryInterval time.Duration // пока сессия не вошла
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Europe/Bratislava")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	var errs []error
	chatIDs, err := parseIDs(os.Getenv("ALLOWED_CHAT_IDS"))
	if err != nil {
		errs = append(errs, fmt.Errorf("ALLOWED_CHAT_IDS: %w", err))
	}
	timeout, err := parseDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		errs = append(errs, err)
	}
	relogin, err := parseDuration("RELOGIN_INTERVAL", 6*time.Hour)
	if err != nil {
		errs = append(errs, err)
	}
	retry, err := parseDuration("LOGIN_RETRY_INTERVAL", time.Minute)
	if err != nil {
		errs = append(errs, err)
	}
	hour, err := parseHour("DIGEST_HOUR", 7)
	if err != nil {
		errs = append(errs, err)
	}

	cfg := &Config{
		Subdomain:          required("EDUPAGE_SUBDOMAIN", &errs),
		Username:           required("EDUPAGE_USERNAME", &errs),
		Password:           required("EDUPAGE_PASSWORD", &errs),
		Domain:             getenv("EDUPAGE_DOMAIN", "edupage.org"),
		HTTPTimeout:        timeout,
		BotToken:           required("BOT_TOKEN", &errs),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AllowedChatIDs:     chatIDs,
		Location:           loc,
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		Env:                getenv("ENV", "dev"),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		DigestHour:         hour,
		ReloginInterval:    relogin,
		LoginRetryInterval: retry,
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// ChatAllowed: пустой список разрешает всех.
func (c *Config) ChatAllowed(chatID int64) bool {
	if len(c.AllowedChatIDs) == 0 {
		return true
	}
	for _, id := range c.AllowedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func required(k string, errs *[]error) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		*errs = append(*errs, fmt.Errorf("required env %s is empty", k))
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(k string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(k))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def, fmt.Errorf("%s: bad duration %q", k, s)
	}
	return d, nil
}

func parseHour(k string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(k))
	if s == "" {
		return def, nil
	}
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return def, fmt.Errorf("%s: bad hour %q", k, s)
	}
	return h, nil
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
