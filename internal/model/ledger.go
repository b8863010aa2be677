package model

import "fmt"

// Mark категория исключения, проставленного учителем на конкретный урок
type Mark string

const (
	MarkNone   Mark = ""       // отметки нет
	MarkNoShow Mark = "noShow" // пропуск без отработки
	MarkMakeup Mark = "makeup" // долг по отработке
)

// LedgerSnapshot сериализуемое состояние журнала посещаемости одного учителя.
// Счётчики всегда выводимы из MarksByLesson; при восстановлении они
// пересчитываются заново, чтобы исключить расхождение.
type LedgerSnapshot struct {
	OwedByStudent   map[int64]int   `json:"owedByStudent"`
	NoShowByStudent map[int64]int   `json:"noShowByStudent"`
	MarksByLesson   map[string]Mark `json:"marksByLesson"`
}

// LoadStatus результат загрузки журнала из хранилища
type LoadStatus int

const (
	LoadEmpty   LoadStatus = iota // записи нет, журнал пуст
	LoadLoaded                    // запись прочитана
	LoadCorrupt                   // запись не распарсилась, журнал пуст
)

// LessonKey собирает ключ записи журнала: "{studentID}|{dateKey}"
func LessonKey(studentID int64, dateKey string) string {
	return fmt.Sprintf("%d|%s", studentID, dateKey)
}
