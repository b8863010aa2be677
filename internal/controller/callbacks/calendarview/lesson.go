package calendarview

import (
	"context"
	"fmt"
	"strconv"
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
	CalLesson = "cal_lesson:" // cal_lesson:<studentID>:<dateKey>
	CalMark   = "cal_mark:"   // cal_mark:<studentID>:<dateKey>:<noshow|makeup|clear>
)

// HandleLessonDetail открывает панель урока: текущая отметка, накопительные
// счётчики ученика и три действия журнала
func HandleLessonDetail(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	studentID, dateKey, err := parseLessonCallback(callback.Data, CalLesson)
	if err != nil {
		h.Logger.Error("Bad lesson callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	teacherID := callback.From.ID
	now := time.Now().UTC()
	view := h.Views.SelectLesson(teacherID, studentID, dateKey, now)
	mv := h.CalendarService.BuildMonth(ctx, teacherID, view.ActiveYear, view.ActiveMonth)

	occ := mv.Grid.FindLesson(studentID, dateKey)
	if occ == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrLessonNotFound))
		return
	}

	// снимок реестра только что обновился в BuildMonth; пропажа ученика
	// означает, что его убрали между отрисовкой месяца и нажатием
	student := h.RosterService.StudentByID(teacherID, studentID)
	if student == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrStudentNotFound))
		return
	}

	store := h.LedgerService.Store(ctx, teacherID)
	mark := store.Mark(studentID, dateKey)

	date, _ := calendar.ParseDateKey(dateKey)
	text := fmt.Sprintf("🎵 %s\n📅 %s, %s\n🕐 %s (%s)\n",
		student.Name,
		formatting.GetWeekdayName(date.Weekday()),
		formatting.FormatDate(date),
		formatting.FormatTimeLabel(occ.TimeLabel),
		formatting.FormatDurationClass(occ.Duration))
	if student.Level != "" {
		text += fmt.Sprintf("🎓 Уровень: %s\n", student.Level)
	}
	text += fmt.Sprintf("\nОтметка: %s\nПропусков у ученика: %d\nДолгов по отработкам: %d",
		formatting.FormatMark(mark),
		store.NoShowCount(studentID),
		store.MakeupOwedCount(studentID))

	prefix := fmt.Sprintf("%s%d:%s:", CalMark, studentID, dateKey)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🚫 Пропуск", prefix+"noshow")).
		Row(keyboard.Button("🔁 Отработка", prefix+"makeup")).
		Row(keyboard.Button("✖️ Снять отметку", prefix+"clear")).
		Row(keyboard.Button("⬅️ К дню", CalDay+dateKey)).
		Build()

	common.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleMark выполняет действие журнала и закрывает панель урока.
// Каждая правка ведёт к полному пересчёту активного месяца — панель дня,
// которую показываем после закрытия, строится уже по новому состоянию.
func HandleMark(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	parts := common.SplitCallback(callback.Data, CalMark)
	if len(parts) != 3 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	studentID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	dateKey := parts[1]
	action := parts[2]
	teacherID := callback.From.ID

	switch action {
	case "noshow":
		h.LedgerService.SetMark(ctx, teacherID, studentID, dateKey, model.MarkNoShow)
	case "makeup":
		h.LedgerService.SetMark(ctx, teacherID, studentID, dateKey, model.MarkMakeup)
	case "clear":
		h.LedgerService.ClearMark(ctx, teacherID, studentID, dateKey)
	default:
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	h.Logger.Info("Ledger mark applied",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("student_id", studentID),
		zap.String("date_key", dateKey),
		zap.String("action", action))

	// Отвечаем до перерисовки: на callback можно ответить только один раз,
	// и это должен быть тост сохранения, а не пустой ответ панели дня
	common.AnswerCallback(ctx, b, callback.ID, "✅ Сохранено")

	// Закрываем панель урока и возвращаемся к дню
	h.Views.CloseDetail(teacherID, time.Now().UTC())
	callback.Data = CalDay + dateKey
	HandleShowDay(ctx, b, callback, h)
}

func parseLessonCallback(data, prefix string) (int64, string, error) {
	parts := common.SplitCallback(data, prefix)
	if len(parts) != 2 {
		return 0, "", common.ErrInvalidFormat
	}
	studentID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", common.ErrInvalidFormat
	}
	return studentID, parts[1], nil
}
