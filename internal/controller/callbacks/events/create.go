package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/formatting"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/keyboard"
	"github.com/soundcheckk/studio_bot/internal/controller/state"
	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

// Диалог создания события: тип → день → время → длительность → цвет → название
const (
	EventNewRecurring = "event_new_rec:"   // event_new_rec:yes|no
	EventNewDay       = "event_new_day:"   // event_new_day:Monday | event_new_day:date
	EventNewDuration  = "event_new_dur:"   // event_new_dur:30M
	EventNewColor     = "event_new_color:" // event_new_color:blue
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// HandleEventNew начинает диалог создания события
func HandleEventNew(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	h.StateManager.ClearState(callback.From.ID)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔁 Каждую неделю", EventNewRecurring+"yes")).
		Row(keyboard.Button("1️⃣ Разовое", EventNewRecurring+"no")).
		Row(keyboard.Button("⬅️ Отмена", EventsList)).
		Build()

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "➕ Новое событие\n\nКак оно повторяется?",
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleEventRecurringChoice запоминает тип события и спрашивает день
func HandleEventRecurringChoice(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID
	recurring := strings.TrimPrefix(callback.Data, EventNewRecurring) == "yes"
	h.StateManager.SetData(teacherID, "event_recurring", recurring)

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, wd := range weekdayOrder {
		row = append(row, keyboard.Button(formatting.GetWeekdayShort(wd), EventNewDay+wd.String()))
		if len(row) == 4 {
			kb.AddRow(row)
			row = nil
		}
	}
	kb.AddRow(row)
	if !recurring {
		kb.Row(keyboard.Button("📅 Указать дату", EventNewDay+"date"))
	}
	kb.Row(keyboard.Button("⬅️ Отмена", EventsList))

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "В какой день?",
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleEventDayChoice запоминает день (или переключает на ввод даты)
// и переходит к вводу времени
func HandleEventDayChoice(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID
	choice := strings.TrimPrefix(callback.Data, EventNewDay)

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)

	if choice == "date" {
		h.StateManager.SetState(teacherID, state.StateEventAwaitDate)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Введите дату в формате 2026-08-12",
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	h.StateManager.SetData(teacherID, "event_day", choice)
	h.StateManager.SetState(teacherID, state.StateEventAwaitTime)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "Введите время, например 5:30 PM",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// AskDuration спрашивает длительность события
func AskDuration(ctx context.Context, b *bot.Bot, chatID int64) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("30 мин", EventNewDuration+model.Duration30M),
			keyboard.Button("45 мин", EventNewDuration+model.Duration45M),
			keyboard.Button("1 час", EventNewDuration+model.Duration1HR),
		).
		Build()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Сколько длится?",
		ReplyMarkup: kb,
	})
}

// HandleEventDurationChoice запоминает длительность и спрашивает цвет
func HandleEventDurationChoice(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID
	h.StateManager.SetData(teacherID, "event_duration", strings.TrimPrefix(callback.Data, EventNewDuration))

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🔵", EventNewColor+"blue"),
			keyboard.Button("🔴", EventNewColor+"red"),
			keyboard.Button("🟢", EventNewColor+"green"),
			keyboard.Button("🟡", EventNewColor+"yellow"),
			keyboard.Button("🟣", EventNewColor+"purple"),
		).
		Build()

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Выберите цвет метки",
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleEventColorChoice запоминает цвет и переходит к вводу названия
func HandleEventColorChoice(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID
	h.StateManager.SetData(teacherID, "event_color", strings.TrimPrefix(callback.Data, EventNewColor))
	h.StateManager.SetState(teacherID, state.StateEventAwaitLabel)

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "Введите название события",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// FinishCreation собирает данные диалога и создаёт событие
func FinishCreation(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, teacherID int64, label string) {
	data := h.StateManager.GetAllData(teacherID)
	h.StateManager.ClearState(teacherID)

	ev := &model.PersonalEvent{
		Label:    label,
		Color:    stringData(data, "event_color"),
		Day:      stringData(data, "event_day"),
		Time:     stringData(data, "event_time"),
		Duration: stringData(data, "event_duration"),
		DateKey:  stringData(data, "event_date_key"),
	}
	if recurring, ok := data["event_recurring"].(bool); ok {
		ev.Recurring = recurring
	}

	if _, err := h.EventService.Create(ctx, teacherID, ev); err != nil {
		h.Logger.Error("Failed to create event",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось сохранить событие, попробуйте ещё раз",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Событие «%s» создано", label),
	})
	ShowEvents(ctx, b, h, chatID, teacherID)
}

func stringData(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
