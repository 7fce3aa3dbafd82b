package tg

import (
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/edupage-school-bot/internal/observability"
)

// MaxMessageLen: предел Telegram на длину текста сообщения.
const MaxMessageLen = 4096

// Считаем системными: 5xx, 429, timeout. 400-ки и типичные телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "Bad Request") ||
		strings.Contains(s, "message is not modified") ||
		strings.Contains(s, "chat not found") ||
		strings.Contains(s, "bot was blocked") {
		return false
	}
	return strings.Contains(s, "429") || strings.Contains(s, "502") ||
		strings.Contains(s, "503") || strings.Contains(s, "timeout")
}

func Send(bot *tgbotapi.BotAPI, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := bot.Send(msg)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return m, err
}

func Request(bot *tgbotapi.BotAPI, req tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	r, err := bot.Request(req)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return r, err
}

// SendText режет длинный текст по строкам на несколько сообщений.
func SendText(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	for _, part := range Split(text, MaxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.DisableWebPagePreview = true
		if _, err := Send(bot, msg); err != nil {
			return err
		}
	}
	return nil
}

func SendDocument(bot *tgbotapi.BotAPI, chatID int64, name string, data []byte) error {
	_, err := Send(bot, tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data}))
	return err
}

// Split делит текст на куски не длиннее limit символов, по возможности по переводам строк.
func Split(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var (
		out []string
		cur strings.Builder
		n   int
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
			n = 0
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		r := []rune(line)
		for len(r) > limit {
			flush()
			out = append(out, string(r[:limit]))
			r = r[limit:]
		}
		if n+len(r) > limit {
			flush()
		}
		cur.WriteString(string(r))
		n += len(r)
	}
	flush()
	return out
}
