package calendarview

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/attendance"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/formatting"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common/keyboard"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/events"
	"github.com/soundcheckk/studio_bot/internal/model"
	"github.com/soundcheckk/studio_bot/internal/viewstate"
	"go.uber.org/zap"
)

// Callback data форматы вида месяца
const (
	CalPrev  = "cal_prev"
	CalNext  = "cal_next"
	CalToday = "cal_today"
	CalBack  = "cal_back"
	CalDay   = "cal_day:" // cal_day:2026-08-12
)

// ShowMonth отправляет вид активного месяца: изображение сетки,
// подпись со сводкой и клавиатуру навигации
func ShowMonth(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, teacherID int64) {
	now := time.Now().UTC()
	view := h.Views.View(teacherID, now)
	mv := h.CalendarService.BuildMonth(ctx, teacherID, view.ActiveYear, view.ActiveMonth)
	store := h.LedgerService.Store(ctx, teacherID)

	caption := monthCaption(view, mv.Summary, mv.RosterStale)
	if h.LedgerService.ConsumeLoadWarning(teacherID) {
		caption += "\n⚠️ Журнал посещаемости не удалось прочитать, он начат заново"
	}

	kb := monthKeyboard(mv.Grid)

	img, err := common.GenerateMonthImage(mv.Grid, now, func(studentID int64, dateKey string) bool {
		return store.Mark(studentID, dateKey) != model.MarkNone
	})
	if err != nil {
		h.Logger.Error("Failed to render month image", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ReplyMarkup: kb,
		})
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "calendar.png",
			Data:     bytes.NewReader(img),
		},
		Caption:     caption,
		ReplyMarkup: kb,
	})
}

// HandleShiftMonth сдвигает курсор месяца на ±1 и перерисовывает вид
func HandleShiftMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, delta int) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	h.Views.ShiftMonth(teacherID, delta, time.Now().UTC())
	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowMonth(ctx, b, h, msg.Chat.ID, teacherID)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleResetMonth возвращает курсор на текущий месяц
func HandleResetMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	h.Views.ResetToCurrentMonth(teacherID, time.Now().UTC())
	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowMonth(ctx, b, h, msg.Chat.ID, teacherID)
	common.AnswerCallback(ctx, b, callback.ID, "Текущий месяц")
}

// HandleBackToMonth закрывает панели дня/урока и показывает месяц
func HandleBackToMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	h.Views.CloseDetail(teacherID, time.Now().UTC())
	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowMonth(ctx, b, h, msg.Chat.ID, teacherID)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

func monthCaption(view viewstate.View, summary attendance.StudioSummary, stale bool) string {
	caption := fmt.Sprintf("🗓 %s %d\n👥 Активных учеников: %d\n🎼 Запланировано: %s ед., посещено: %s ед.",
		formatting.GetMonthName(view.ActiveMonth),
		view.ActiveYear,
		summary.ActiveStudents,
		formatting.FormatUnits(summary.ScheduledUnits),
		formatting.FormatUnits(summary.AttendedUnits))
	if stale {
		caption += "\n⚠️ Список учеников не обновился, показан предыдущий снимок"
	}
	return caption
}

func monthKeyboard(grid *calendar.MonthGrid) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	// Строка дней недели
	var header []models.InlineKeyboardButton
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		header = append(header, keyboard.Button(formatting.GetWeekdayShort(wd), "noop"))
	}
	kb.AddRow(header)

	// Сетка дней: целое число недель
	for week := 0; week*7 < len(grid.Days); week++ {
		var row []models.InlineKeyboardButton
		for i := 0; i < 7; i++ {
			day := grid.Days[week*7+i]
			label := fmt.Sprintf("%d", day.Date.Day())
			if !day.InMonth {
				label = fmt.Sprintf("·%d", day.Date.Day())
			} else if len(day.Occurrences) > 0 {
				label = fmt.Sprintf("%d•", day.Date.Day())
			}
			row = append(row, keyboard.Button(label, CalDay+day.DateKey))
		}
		kb.AddRow(row)
	}

	kb.Row(
		keyboard.Button("⬅️", CalPrev),
		keyboard.Button("Сегодня", CalToday),
		keyboard.Button("➡️", CalNext),
	)
	kb.Row(
		keyboard.Button("📊 Сводка", SummaryShow),
		keyboard.Button("🗒 События", events.EventsList),
	)

	return kb.Build()
}
