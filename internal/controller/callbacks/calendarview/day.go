package calendarview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/formatting"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/keyboard"
	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

const (
	CalDayAll = "cal_day_all:" // cal_day_all:2026-08-12 — раскрыть все занятия дня

	// В свёрнутой панели дня показываем не больше четырёх занятий
	dayPanelLimit = 4
)

// HandleShowDay открывает панель дня (свёрнутую)
func HandleShowDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	showDay(ctx, b, callback, h, strings.TrimPrefix(callback.Data, CalDay), false)
}

// HandleShowDayAll открывает панель дня со всеми занятиями
func HandleShowDayAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	showDay(ctx, b, callback, h, strings.TrimPrefix(callback.Data, CalDayAll), true)
}

func showDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, dateKey string, expanded bool) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	date, err := calendar.ParseDateKey(dateKey)
	if err != nil {
		h.Logger.Error("Bad date key in day callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	now := time.Now().UTC()
	view := h.Views.SelectDay(teacherID, dateKey, now)
	mv := h.CalendarService.BuildMonth(ctx, teacherID, view.ActiveYear, view.ActiveMonth)

	day := mv.Grid.Day(dateKey)
	if day == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDayNotFound))
		return
	}

	store := h.LedgerService.Store(ctx, teacherID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 %s, %s\n\n",
		formatting.GetWeekdayName(date.Weekday()),
		formatting.FormatDate(date)))

	if len(day.Occurrences) == 0 {
		sb.WriteString("Занятий нет")
	}

	kb := keyboard.NewBuilder()
	shown := 0
	hidden := 0
	for i := range day.Occurrences {
		occ := &day.Occurrences[i]
		if !expanded && shown == dayPanelLimit {
			hidden = len(day.Occurrences) - shown
			break
		}
		shown++

		switch occ.Kind {
		case calendar.OccurrenceLesson:
			line := fmt.Sprintf("🎵 %s — %s (%s)",
				formatting.FormatTimeLabel(occ.TimeLabel),
				occ.Label,
				formatting.FormatDurationClass(occ.Duration))
			if mark := store.Mark(occ.StudentID, dateKey); mark != model.MarkNone {
				line += " · " + formatting.FormatMark(mark)
			}
			sb.WriteString(line + "\n")
			kb.Row(keyboard.Button(
				fmt.Sprintf("🎵 %s %s", formatting.FormatTimeLabel(occ.TimeLabel), occ.Label),
				fmt.Sprintf("%s%d:%s", CalLesson, occ.StudentID, dateKey),
			))
		case calendar.OccurrenceEvent:
			sb.WriteString(fmt.Sprintf("📌 %s — %s\n",
				formatting.FormatTimeLabel(occ.TimeLabel),
				occ.Label))
		}
	}

	if hidden > 0 {
		kb.Row(keyboard.Button(fmt.Sprintf("➕ Ещё %d", hidden), CalDayAll+dateKey))
	}
	kb.Row(keyboard.Button("⬅️ К месяцу", CalBack))

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        sb.String(),
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
