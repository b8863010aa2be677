package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/calendarview"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/events"
	"github.com/soundcheckk/studio_bot/internal/controller/state"
	"go.uber.org/zap"
)

const startText = `👋 Привет! Я помогу вести расписание студии.

🗓 /calendar — календарь занятий на месяц
📊 /summary — сводка посещаемости
🗒 /events — личные события

В календаре нажмите на день, затем на урок, чтобы отметить
пропуск или отработку.`

const helpText = `Команды:
/calendar — месячный календарь с уроками и событиями
/summary — посещаемость учеников за активный месяц
/events — список личных событий, создание и удаление

Отметки в журнале:
🚫 пропуск — занятие не состоялось по вине ученика
🔁 отработка — ученик отрабатывает долг
✖️ снять отметку — вернуть занятие в обычное состояние`

// HandleStart обрабатывает команду /start
func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	h.StateManager.ClearState(update.Message.From.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   startText,
	})
}

// HandleHelp обрабатывает команду /help
func HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCalendar обрабатывает команду /calendar
func HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	h.StateManager.ClearState(update.Message.From.ID)
	calendarview.ShowMonth(ctx, b, h, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleSummary обрабатывает команду /summary
func HandleSummary(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	h.StateManager.ClearState(update.Message.From.ID)
	calendarview.ShowSummary(ctx, b, h, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleEvents обрабатывает команду /events
func HandleEvents(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	h.StateManager.ClearState(update.Message.From.ID)
	events.ShowEvents(ctx, b, h, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleTextMessage обрабатывает текстовые сообщения по состоянию диалога
func HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler) {
	teacherID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch h.StateManager.GetState(teacherID) {
	case state.StateEventAwaitDate:
		if _, err := calendar.ParseDateKey(text); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Не понял дату, нужен формат 2026-08-12. Попробуйте ещё раз",
			})
			return
		}
		h.StateManager.SetData(teacherID, "event_date_key", text)
		h.StateManager.SetState(teacherID, state.StateEventAwaitTime)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Введите время, например 5:30 PM",
		})

	case state.StateEventAwaitTime:
		if calendar.ParseClockMinutes(text) == calendar.UnparsedTime {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Не понял время, примеры: 5:30 PM, 15:30. Попробуйте ещё раз",
			})
			return
		}
		// состояние не меняем: дальше диалог идёт кнопками,
		// а SetState(StateNone) стёр бы накопленные данные
		h.StateManager.SetData(teacherID, "event_time", text)
		events.AskDuration(ctx, b, chatID)

	case state.StateEventAwaitLabel:
		if text == "" {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Название не может быть пустым",
			})
			return
		}
		events.FinishCreation(ctx, b, h, chatID, teacherID, text)

	default:
		h.Logger.Debug("Text message outside dialog",
			zap.Int64("telegram_id", teacherID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Не понял. Откройте календарь командой /calendar или /help",
		})
	}
}
