package app

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
	"github.com/Spok95/edupage-school-bot/internal/metrics"
	"github.com/Spok95/edupage-school-bot/internal/observability"
	"github.com/Spok95/edupage-school-bot/internal/tg"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	disp    *Dispatcher
	allowed func(chatID int64) bool
	limiter *ChatLimiter
	log     *zap.Logger
}

func NewBot(api *tgbotapi.BotAPI, disp *Dispatcher, allowed func(int64) bool, log *zap.Logger) *Bot {
	return &Bot{api: api, disp: disp, allowed: allowed, limiter: NewChatLimiter(), log: log}
}

// Run читает обновления до отмены ctx.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			if upd.Message == nil || upd.Message.Text == "" {
				continue
			}
			metrics.BotUpdates.Inc()
			go b.handle(ctx, upd.Message)
		}
	}
}

func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.allowed != nil && !b.allowed(chatID) {
		b.reply(chatID, Reply{Text: "🚫 Доступ к боту закрыт."})
		return
	}
	// одна команда на чат за раз; остальные ждут
	unlock := b.limiter.lock(chatID)
	defer unlock()

	cmd, _ := parseCommand(msg.Text)
	ctx = ctxutil.WithOp(ctxutil.WithChatID(ctx, chatID), "bot"+cmd)

	reply, err := b.disp.Handle(ctx, chatID, msg.Text)
	if err != nil {
		metrics.HandlerErrors.Inc()
		observability.CaptureCtx(ctx, err)
		b.log.Error("command failed", zap.Int64("chat_id", chatID), zap.String("cmd", cmd), zap.Error(err))
		reply = Reply{Text: "⚠️ Не получилось выполнить команду, попробуйте позже."}
	}
	b.reply(chatID, reply)
}

func (b *Bot) reply(chatID int64, r Reply) {
	if r.Text != "" {
		if err := tg.SendText(b.api, chatID, r.Text); err != nil {
			metrics.HandlerErrors.Inc()
			b.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	if r.File != nil {
		if err := tg.SendDocument(b.api, chatID, r.File.Name, r.File.Data); err != nil {
			metrics.HandlerErrors.Inc()
			b.log.Warn("send document failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// SendDigest: отправка текста рассылки в чат, для фоновой задачи.
func (b *Bot) SendDigest(_ context.Context, chatID int64, text string) error {
	return tg.SendText(b.api, chatID, text)
}
