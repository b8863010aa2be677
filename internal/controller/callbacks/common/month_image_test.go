package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/model"
)

func TestGenerateMonthImage(t *testing.T) {
	students := []*model.Student{
		{
			ID: 1, Name: "Иванов", Status: model.StudentStatusActive,
			LessonDay: "Monday", LessonTime: "3:30 PM", LessonDuration: model.Duration30M,
		},
	}
	events := []*model.PersonalEvent{
		{ID: "e1", Label: "Оркестр", Recurring: true, Day: "Wednesday", Time: "6:00 PM", Color: "green"},
	}
	grid := calendar.MaterializeMonth(2026, time.August, students, events)
	today := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

	data, err := GenerateMonthImage(grid, today, func(studentID int64, dateKey string) bool {
		return dateKey == "2026-08-10"
	})
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("результат не декодируется как PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 1400 {
		t.Errorf("ширина %d, ожидали 1400", bounds.Dx())
	}
	// август 2026 занимает 6 недель
	wantHeight := 90 + 40 + 6*160
	if bounds.Dy() != wantHeight {
		t.Errorf("высота %d, ожидали %d", bounds.Dy(), wantHeight)
	}
}

func TestGenerateMonthImageNilLookup(t *testing.T) {
	grid := calendar.MaterializeMonth(2026, time.February, nil, nil)
	if _, err := GenerateMonthImage(grid, time.Now().UTC(), nil); err != nil {
		t.Fatalf("пустой месяц без lookup должен рисоваться: %v", err)
	}
}

// Каждый размер шрифта получает свой face, и повторный запрос того же
// размера отдаёт кэшированный
func TestFaceForSizeCachedPerSize(t *testing.T) {
	title := faceForSize(26)
	chip := faceForSize(14)
	if title == nil || chip == nil {
		t.Fatal("faceForSize вернул nil")
	}
	if again := faceForSize(26); again != title {
		t.Error("face одного размера должен кэшироваться")
	}
	if again := faceForSize(14); again != chip {
		t.Error("face одного размера должен кэшироваться")
	}
}

func TestChipTextTruncation(t *testing.T) {
	occ := &calendar.Occurrence{
		Kind:      calendar.OccurrenceLesson,
		TimeLabel: "3:30 PM",
		Label:     "Очень длинное имя ученика которое не влезает в ячейку никаким образом",
	}
	text := chipText(occ, 200)
	runes := []rune(text)
	if len(runes) > 22 {
		t.Errorf("обрезанный текст длиной %d рун: %q", len(runes), text)
	}
	if runes[len(runes)-1] != '…' {
		t.Errorf("обрезка должна кончаться многоточием: %q", text)
	}

	occ.Label = "Ива"
	if got := chipText(occ, 200); got != "3:30 PM Ива" {
		t.Errorf("короткий текст не должен обрезаться: %q", got)
	}
}
