package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/formatting"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/keyboard"
	"go.uber.org/zap"
)

// Callback data форматы событий
const (
	EventsList  = "events_list"
	EventNew    = "event_new"
	EventDelete = "event_delete:" // event_delete:<uuid>
	BackToMonth = "cal_back"
)

// HandleEventsList показывает список личных событий учителя
func HandleEventsList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowEvents(ctx, b, h, msg.Chat.ID, callback.From.ID)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// ShowEvents отправляет панель событий
func ShowEvents(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, teacherID int64) {
	events := h.EventService.List(ctx, teacherID)

	var sb strings.Builder
	sb.WriteString("🗒 Личные события\n\n")

	kb := keyboard.NewBuilder()
	if len(events) == 0 {
		sb.WriteString("Событий пока нет")
	}
	for _, ev := range events {
		sb.WriteString("📌 " + ev.Label)
		if ev.Recurring {
			if weekday, ok := calendar.ParseWeekday(ev.Day); ok {
				sb.WriteString(fmt.Sprintf(" — каждую неделю, %s", formatting.GetWeekdayName(weekday)))
			} else {
				sb.WriteString(" — еженедельно")
			}
		} else if ev.DateKey != "" {
			if date, err := calendar.ParseDateKey(ev.DateKey); err == nil {
				sb.WriteString(" — " + formatting.FormatDate(date))
			}
		} else {
			sb.WriteString(" — разовое")
		}
		if ev.Time != "" {
			sb.WriteString(", " + ev.Time)
		}
		sb.WriteString("\n")
		kb.Row(keyboard.Button("🗑 "+ev.Label, EventDelete+ev.ID))
	}

	kb.Row(keyboard.Button("➕ Новое событие", EventNew))
	kb.Row(keyboard.Button("⬅️ К месяцу", BackToMonth))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: kb.Build(),
	})
}

// HandleEventDelete удаляет событие и перерисовывает список
func HandleEventDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID
	eventID := strings.TrimPrefix(callback.Data, EventDelete)

	if err := h.EventService.Delete(ctx, teacherID, eventID); err != nil {
		h.Logger.Warn("Failed to delete event",
			zap.Int64("teacher_id", teacherID),
			zap.String("event_id", eventID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrEventNotFound))
		return
	}

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowEvents(ctx, b, h, msg.Chat.ID, teacherID)
	common.AnswerCallback(ctx, b, callback.ID, "🗑 Событие удалено")
}
