package calendarview

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
	"github.com/soundcheckk/studio_bot/internal/export"
	"go.uber.org/zap"
)

const (
	SummaryShow   = "summary_show"
	SummaryExport = "summary_export"
)

// HandleSummary показывает помесячную сводку: ученики, требующие внимания,
// первыми, затем итоги студии
func HandleSummary(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	ShowSummary(ctx, b, h, msg.Chat.ID, teacherID)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// ShowSummary отправляет панель сводки за активный месяц
func ShowSummary(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, teacherID int64) {
	now := time.Now().UTC()
	view := h.Views.View(teacherID, now)
	mv := h.CalendarService.BuildMonth(ctx, teacherID, view.ActiveYear, view.ActiveMonth)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Сводка: %s %d\n\n",
		formatting.GetMonthName(view.ActiveMonth), view.ActiveYear))

	if len(mv.PerStudent) == 0 {
		sb.WriteString("Активных учеников нет\n")
	}
	for _, m := range mv.PerStudent {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", m.Name, formatting.FormatDurationClass(m.DurationClass)))
		sb.WriteString(fmt.Sprintf("  запланировано %s ед., прошло %s, посещено %s",
			formatting.FormatUnits(m.TotalLessons),
			formatting.FormatUnits(m.LessonsSoFar),
			formatting.FormatUnits(m.AttendedUnits)))
		if m.NoShowCount > 0 || m.MakeupCount > 0 {
			sb.WriteString(fmt.Sprintf("\n  🚫 пропуски: %s ед. · 🔁 отработки: %s ед.",
				formatting.FormatUnits(m.NoShowUnits),
				formatting.FormatUnits(m.MakeupUnits)))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("Итого: %d учеников, %s ед. запланировано, %s ед. посещено",
		mv.Summary.ActiveStudents,
		formatting.FormatUnits(mv.Summary.ScheduledUnits),
		formatting.FormatUnits(mv.Summary.AttendedUnits)))
	if mv.RosterStale {
		sb.WriteString("\n⚠️ Список учеников не обновился, показан предыдущий снимок")
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📥 Выгрузить XLSX", SummaryExport)).
		Row(keyboard.Button("⬅️ К месяцу", CalBack)).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: kb,
	})
}

// HandleSummaryExport выгружает сводку месяца в XLSX
func HandleSummaryExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}
	teacherID := callback.From.ID

	now := time.Now().UTC()
	view := h.Views.View(teacherID, now)
	mv := h.CalendarService.BuildMonth(ctx, teacherID, view.ActiveYear, view.ActiveMonth)

	title := fmt.Sprintf("Посещаемость — %s %d", formatting.GetMonthName(view.ActiveMonth), view.ActiveYear)
	buf, err := export.BuildAttendanceReport(title, mv.PerStudent, mv.Summary)
	if err != nil {
		h.Logger.Error("Failed to build attendance report", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось собрать отчёт")
		return
	}

	filename := fmt.Sprintf("attendance_%d_%02d.xlsx", view.ActiveYear, int(view.ActiveMonth))
	b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: msg.Chat.ID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     buf,
		},
		Caption: title,
	})
	common.AnswerCallback(ctx, b, callback.ID, "📥 Отчёт отправлен")
}
