package model

import "time"

// PersonalEvent представляет личное событие учителя в календаре.
// Либо повторяется еженедельно по дню недели, либо происходит один раз:
// по явной дате (DateKey) или по дню недели относительно опорной недели.
type PersonalEvent struct {
	ID        string    `json:"id"` // uuid
	Label     string    `json:"label"`
	Color     string    `json:"color"` // косметическая метка
	Recurring bool      `json:"recurring"`
	Day       string    `json:"day"`  // день недели
	Time      string    `json:"time"` // свободный формат "HH:MM AM/PM"
	Duration  string    `json:"duration"`
	StartWeek time.Time `json:"start_week"`         // опорная неделя для одноразовых событий без даты
	DateKey   string    `json:"date_key,omitempty"` // явная дата "2006-01-02" для одноразовых событий
	CreatedAt time.Time `json:"created_at"`
}
