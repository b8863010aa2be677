package calendarview

import (
	"strings"
	"testing"
	"time"

	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/events"
)

func TestMonthKeyboard(t *testing.T) {
	grid := calendar.MaterializeMonth(2026, time.August, nil, nil)
	kb := monthKeyboard(grid)
	rows := kb.InlineKeyboard

	// заголовок + 6 недель августа + навигация + действия
	if len(rows) != 9 {
		t.Fatalf("рядов клавиатуры %d, ожидали 9", len(rows))
	}

	for _, row := range rows[1:7] {
		if len(row) != 7 {
			t.Fatalf("в ряду дней %d кнопок, ожидали 7", len(row))
		}
		for _, btn := range row {
			if !strings.HasPrefix(btn.CallbackData, CalDay) {
				t.Errorf("кнопка дня ведёт на %q, ожидали префикс %q", btn.CallbackData, CalDay)
			}
		}
	}
	// первая ячейка — добивочное воскресенье 26 июля
	if got := rows[1][0].CallbackData; got != CalDay+"2026-07-26" {
		t.Errorf("первая ячейка ведёт на %q", got)
	}

	nav := rows[7]
	if nav[0].CallbackData != CalPrev || nav[1].CallbackData != CalToday || nav[2].CallbackData != CalNext {
		t.Errorf("ряд навигации: %q, %q, %q", nav[0].CallbackData, nav[1].CallbackData, nav[2].CallbackData)
	}

	actions := rows[8]
	if actions[0].CallbackData != SummaryShow {
		t.Errorf("кнопка сводки ведёт на %q", actions[0].CallbackData)
	}
	// кнопка событий обязана вести на константу пакета events,
	// которую слушает роутер
	if actions[1].CallbackData != events.EventsList {
		t.Errorf("кнопка событий ведёт на %q, ожидали %q", actions[1].CallbackData, events.EventsList)
	}
}
