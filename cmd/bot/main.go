package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/app"
	"github.com/Spok95/edupage-school-bot/internal/config"
	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
	"github.com/Spok95/edupage-school-bot/internal/db"
	"github.com/Spok95/edupage-school-bot/internal/dbi"
	"github.com/Spok95/edupage-school-bot/internal/jobs"
	"github.com/Spok95/edupage-school-bot/internal/logging"
	"github.com/Spok95/edupage-school-bot/internal/observability"
	"github.com/Spok95/edupage-school-bot/internal/portal"
	"github.com/Spok95/edupage-school-bot/internal/ringing"
	"github.com/Spok95/edupage-school-bot/internal/substitution"
	"github.com/Spok95/edupage-school-bot/internal/timeline"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
	"github.com/Spok95/edupage-school-bot/internal/transport"
)

var release = "dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка логгера: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Портал EduPage
	tr, err := transport.New(cfg.HTTPTimeout, lg.Named("transport"))
	if err != nil {
		logger.Fatal("transport init failed", zap.Error(err))
	}
	sess := portal.New(tr, portal.WithDomain(cfg.Domain), portal.WithLogger(lg.Named("portal")))
	creds := jobs.Credentials{Subdomain: cfg.Subdomain, Username: cfg.Username, Password: cfg.Password}

	loginCtx, cancel := ctxutil.WithTimeout(ctxutil.WithOp(ctx, "login"), cfg.HTTPTimeout*2)
	err = jobs.Relogin(sess, creds)(loginCtx)
	cancel()
	switch {
	case errors.Is(err, portal.ErrInvalidCredentials):
		logger.Fatal("edupage login rejected", zap.String("subdomain", cfg.Subdomain))
	case err != nil:
		// повторит login-retry, пока /healthz отдаёт 503
		logger.Error("edupage login failed", zap.Error(err))
		observability.CaptureErr(err)
	default:
		logger.Info("edupage session ready", zap.String("subdomain", cfg.Subdomain))
	}

	// БД нужна только для подписок
	var database *sql.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect failed", zap.Error(err))
		}
		defer database.Close()
		if err := db.Migrate(database); err != nil {
			logger.Fatal("db migrate failed", zap.Error(err))
		}
	}

	dir := dbi.New(sess)
	disp := app.NewDispatcher(app.Deps{
		Session:   sess,
		Directory: dir,
		Timetable: timetable.NewResolver(sess, dir),
		Ringing:   ringing.New(sess),
		Subst:     substitution.New(sess),
		Timeline:  timeline.New(sess),
		DB:        database,
		Location:  cfg.Location,
		Log:       lg.Named("app"),
	})

	// Инициализация Telegram бота
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("telegram init failed", zap.Error(err))
	}
	api.Debug = cfg.Env != "prod"
	logger.Info("bot started", zap.String("username", api.Self.UserName))
	bot := app.NewBot(api, disp, cfg.ChatAllowed, lg.Named("bot"))

	app.StartHTTP(ctx, cfg.HTTPAddr, sess, database)

	runner := jobs.New(ctx, lg.Named("jobs"))
	runner.Every(cfg.ReloginInterval, "relogin", jobs.Relogin(sess, creds))
	runner.Every(cfg.LoginRetryInterval, "login-retry", jobs.RetryLogin(sess, creds))
	if database != nil {
		digest := &jobs.Digest{
			Store:     db.Subscriptions{DB: database},
			Subdomain: cfg.Subdomain,
			Render:    disp.Digest,
			Send:      bot.SendDigest,
			Location:  cfg.Location,
			Log:       lg.Named("digest"),
		}
		runner.Daily(cfg.DigestHour, cfg.Location, "digest", digest.Run)
	}

	bot.Run(ctx)
	logger.Info("shutting down")
}
