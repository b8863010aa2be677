package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/calendarview"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/common"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/events"
	"github.com/soundcheckk/studio_bot/internal/metrics"
	"go.uber.org/zap"
)

// Route распределяет callback queries по обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Callback received",
		zap.Int64("telegram_id", callback.From.ID),
		zap.String("data", data))

	switch {
	// Вид месяца
	case data == calendarview.CalPrev:
		calendarview.HandleShiftMonth(ctx, b, callback, h, -1)
	case data == calendarview.CalNext:
		calendarview.HandleShiftMonth(ctx, b, callback, h, 1)
	case data == calendarview.CalToday:
		calendarview.HandleResetMonth(ctx, b, callback, h)
	case data == calendarview.CalBack:
		calendarview.HandleBackToMonth(ctx, b, callback, h)

	// Панель дня и урока
	case strings.HasPrefix(data, calendarview.CalDayAll):
		calendarview.HandleShowDayAll(ctx, b, callback, h)
	case strings.HasPrefix(data, calendarview.CalDay):
		calendarview.HandleShowDay(ctx, b, callback, h)
	case strings.HasPrefix(data, calendarview.CalMark):
		calendarview.HandleMark(ctx, b, callback, h)
	case strings.HasPrefix(data, calendarview.CalLesson):
		calendarview.HandleLessonDetail(ctx, b, callback, h)

	// Сводка
	case data == calendarview.SummaryShow:
		calendarview.HandleSummary(ctx, b, callback, h)
	case data == calendarview.SummaryExport:
		calendarview.HandleSummaryExport(ctx, b, callback, h)

	// Личные события
	case data == events.EventsList:
		events.HandleEventsList(ctx, b, callback, h)
	case data == events.EventNew:
		events.HandleEventNew(ctx, b, callback, h)
	case strings.HasPrefix(data, events.EventDelete):
		events.HandleEventDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, events.EventNewRecurring):
		events.HandleEventRecurringChoice(ctx, b, callback, h)
	case strings.HasPrefix(data, events.EventNewDay):
		events.HandleEventDayChoice(ctx, b, callback, h)
	case strings.HasPrefix(data, events.EventNewDuration):
		events.HandleEventDurationChoice(ctx, b, callback, h)
	case strings.HasPrefix(data, events.EventNewColor):
		events.HandleEventColorChoice(ctx, b, callback, h)

	case data == "noop":
		common.AnswerCallback(ctx, b, callback.ID, "")

	default:
		metrics.HandlerErrors.Inc()
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
