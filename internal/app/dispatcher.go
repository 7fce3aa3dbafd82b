package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/ctxutil"
	"github.com/Spok95/edupage-school-bot/internal/db"
	"github.com/Spok95/edupage-school-bot/internal/dbi"
	"github.com/Spok95/edupage-school-bot/internal/export"
	"github.com/Spok95/edupage-school-bot/internal/portal"
	"github.com/Spok95/edupage-school-bot/internal/ringing"
	"github.com/Spok95/edupage-school-bot/internal/substitution"
	"github.com/Spok95/edupage-school-bot/internal/timeline"
	"github.com/Spok95/edupage-school-bot/internal/timetable"
)

const newsLimit = 5

const helpText = `Команды:
/today — расписание на сегодня
/tomorrow — расписание на завтра
/next — текущий и следующий урок, ближайший звонок
/bell — расписание звонков
/teachers — список учителей
/news — последние новости
/subst [завтра] — замены
/export [dir] — расписание (или справочник) в Excel
/subscribe, /unsubscribe — утренняя рассылка расписания`

type Deps struct {
	Session   *portal.Session
	Directory *dbi.Store
	Timetable *timetable.Resolver
	Ringing   *ringing.Schedule
	Subst     *substitution.Client
	Timeline  *timeline.Timeline
	DB        *sql.DB // nil — подписки отключены
	Location  *time.Location
	Now       func() time.Time
	Log       *zap.Logger
}

type File struct {
	Name string
	Data []byte
}

// Reply: ответ на команду: текст и/или файл.
type Reply struct {
	Text string
	File *File
}

type Dispatcher struct {
	d Deps
}

func NewDispatcher(d Deps) *Dispatcher {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Dispatcher{d: d}
}

// Handle выполняет команду. Ожидаемые состояния портала (нет входа, нет плана)
// превращаются в текст ответа; прочие ошибки возвращаются вызывающему.
func (h *Dispatcher) Handle(ctx context.Context, chatID int64, text string) (Reply, error) {
	cmd, arg := parseCommand(text)
	var (
		r   Reply
		err error
	)
	switch cmd {
	case "/start", "/help":
		r, err = h.start()
	case "/today":
		r, err = h.day(0)
	case "/tomorrow":
		r, err = h.day(1)
	case "/next":
		r, err = h.next()
	case "/bell":
		r = Reply{Text: FormatBells(h.d.Ringing.Times())}
	case "/teachers":
		r, err = h.teachers()
	case "/news":
		r, err = h.news()
	case "/subst":
		r, err = h.subst(ctx, tomorrowArg(arg))
	case "/export":
		r, err = h.export(arg)
	case "/subscribe":
		r, err = h.subscribe(ctx, chatID, true)
	case "/unsubscribe":
		r, err = h.subscribe(ctx, chatID, false)
	default:
		return Reply{Text: "⚠️ Неизвестная команда. Используйте /help"}, nil
	}
	if err != nil {
		return userError(err)
	}
	return r, nil
}

// Digest: текст утренней рассылки.
func (h *Dispatcher) Digest(_ context.Context, day time.Time) (string, error) {
	tt, err := h.d.Timetable.Timetable(day)
	if err != nil {
		return "", err
	}
	return "Доброе утро! " + FormatTimetable(tt), nil
}

func parseCommand(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	cmd := strings.ToLower(fields[0])
	// /today@my_bot в группах
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return cmd, strings.ToLower(strings.Join(fields[1:], " "))
}

func tomorrowArg(arg string) int {
	switch arg {
	case "завтра", "tomorrow", "+1":
		return 1
	}
	return 0
}

func userError(err error) (Reply, error) {
	switch portal.KindOf(err) {
	case portal.KindNotLoggedIn:
		return Reply{Text: "Портал сейчас недоступен, попробуйте позже."}, nil
	case portal.KindMissingData:
		return Reply{Text: "На этот день расписания нет."}, nil
	}
	return Reply{}, err
}

func (h *Dispatcher) today() time.Time {
	now := h.d.Now().In(h.d.Location)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.d.Location)
}

func (h *Dispatcher) start() (Reply, error) {
	snap, err := h.d.Session.Snapshot()
	if err != nil {
		return Reply{}, err
	}
	name, err := h.d.Directory.PrincipalName()
	if err != nil {
		return Reply{}, err
	}
	var b strings.Builder
	b.WriteString("👋 Бот расписания EduPage")
	if name != "" {
		b.WriteString("\nВошли как: " + name)
	}
	if snap.NamedayToday != "" {
		b.WriteString("\nСегодня именины: " + snap.NamedayToday)
	}
	b.WriteString("\n\n" + helpText)
	return Reply{Text: b.String()}, nil
}

func (h *Dispatcher) day(offset int) (Reply, error) {
	day := h.today().AddDate(0, 0, offset)
	tt, err := h.d.Timetable.Timetable(day)
	if err != nil {
		if errors.Is(err, portal.ErrMissingData) {
			return Reply{Text: "На " + dayTitle(day) + " расписания нет."}, nil
		}
		return Reply{}, err
	}
	return Reply{Text: FormatTimetable(tt)}, nil
}

func (h *Dispatcher) next() (Reply, error) {
	now := h.d.Now().In(h.d.Location)
	tt, err := h.d.Timetable.Timetable(now)
	switch {
	case errors.Is(err, portal.ErrMissingData):
		tt = &timetable.Timetable{Date: now}
	case err != nil:
		return Reply{}, err
	}

	var (
		bell    ringing.Boundary
		hasBell bool
	)
	// время звонков привязано к дню разбора снимка
	if times := h.d.Ringing.Times(); len(times) > 0 {
		bell, hasBell = h.d.Ringing.NextBoundary(onDay(times[0].Start.Time, now))
	}
	return Reply{Text: FormatNext(tt.On(now), now, bell, hasBell)}, nil
}

func (h *Dispatcher) teachers() (Reply, error) {
	ts, err := h.d.Directory.Teachers()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: FormatTeachers(ts)}, nil
}

func (h *Dispatcher) news() (Reply, error) {
	items, err := h.d.Timeline.ByTypes(codec.TimelineNews, codec.TimelineMessage, codec.TimelineEvent)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: FormatNews(items, newsLimit)}, nil
}

func (h *Dispatcher) subst(ctx context.Context, offset int) (Reply, error) {
	day := h.today().AddDate(0, 0, offset)
	html, err := h.d.Subst.HTML(ctxutil.WithOp(ctx, "subst"), day)
	if err != nil {
		return Reply{}, err
	}
	text := substitution.Text(html)
	if text == "" {
		return Reply{Text: "На " + dayTitle(day) + " замен нет."}, nil
	}
	return Reply{Text: "🔁 Замены на " + dayTitle(day) + "\n" + text}, nil
}

func (h *Dispatcher) export(arg string) (Reply, error) {
	sub, err := h.d.Session.Subdomain()
	if err != nil {
		return Reply{}, err
	}
	var (
		sheets []export.SheetSpec
		name   string
	)
	if arg == "dir" || arg == "справочник" {
		snap, err := h.d.Session.Snapshot()
		if err != nil {
			return Reply{}, err
		}
		year := export.CurrentSchoolYearStartYear(h.today())
		if snap.DP.SchoolYear.Valid {
			year = int(snap.DP.SchoolYear.Int64)
		}
		if sheets, err = export.DirectorySheets(h.d.Directory); err != nil {
			return Reply{}, err
		}
		name = export.BuildDirectoryFilename(sub, year)
	} else {
		day := h.today()
		tt, err := h.d.Timetable.Timetable(day)
		if err != nil {
			return Reply{}, err
		}
		sheets = []export.SheetSpec{export.TimetableSheet(tt)}
		name = export.BuildTimetableFilename(sub, day)
	}

	wb, err := export.NewWorkbook(sheets)
	if err != nil {
		return Reply{}, fmt.Errorf("build workbook: %w", err)
	}
	data, err := wb.Bytes()
	if err != nil {
		return Reply{}, fmt.Errorf("write workbook: %w", err)
	}
	return Reply{File: &File{Name: name, Data: data}}, nil
}

func (h *Dispatcher) subscribe(ctx context.Context, chatID int64, on bool) (Reply, error) {
	if h.d.DB == nil {
		return Reply{Text: "Рассылка не настроена."}, nil
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if !on {
		removed, err := db.Unsubscribe(ctx, h.d.DB, chatID)
		if err != nil {
			return Reply{}, err
		}
		if !removed {
			return Reply{Text: "Вы не были подписаны."}, nil
		}
		return Reply{Text: "Рассылка отключена."}, nil
	}

	sub, err := h.d.Session.Subdomain()
	if err != nil {
		return Reply{}, err
	}
	created, err := db.Subscribe(ctx, h.d.DB, chatID, sub)
	if err != nil {
		return Reply{}, err
	}
	if !created {
		return Reply{Text: "Вы уже подписаны."}, nil
	}
	h.d.Log.Info("chat subscribed", zap.Int64("chat_id", chatID), zap.String("subdomain", sub))
	return Reply{Text: "✅ Каждое утро буду присылать расписание на день."}, nil
}
