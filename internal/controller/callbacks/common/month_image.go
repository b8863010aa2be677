package common

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	headerHeight     = 90
	weekdayRowHeight = 40
	cellHeight       = 160
	cellPadding      = 6.0
	chipHeight       = 26.0
	chipRadius       = 5.0
	maxChipsPerCell  = 4
	totalDaysInWeek  = 7
)

// Константы шрифтов
const (
	titleFontSize   = 26.0
	weekdayFontSize = 16.0
	dayNumFontSize  = 18.0
	chipFontSize    = 14.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	cellColor      = color.RGBA{255, 255, 255, 255}
	padCellColor   = color.RGBA{236, 238, 241, 255}
	todayBorder    = color.RGBA{66, 133, 244, 255}
	textColor      = color.RGBA{60, 64, 67, 255}
	dimTextColor   = color.RGBA{150, 155, 160, 255}
	lessonChip     = color.RGBA{210, 227, 252, 255}
	markedChip     = color.RGBA{252, 220, 220, 255}
	chipTextColor  = color.RGBA{40, 45, 50, 255}
	overflowColor  = color.RGBA{110, 115, 120, 255}
	eventChipByTag = map[string]color.RGBA{
		"red":    {252, 220, 220, 255},
		"green":  {219, 247, 226, 255},
		"yellow": {252, 244, 206, 255},
		"purple": {237, 224, 250, 255},
		"blue":   {210, 227, 252, 255},
	}
	defaultEventChip = color.RGBA{228, 233, 238, 255}
)

var weekdayLabels = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var (
	fontMu     sync.Mutex
	fontTried  bool
	parsedFont *opentype.Font
	faceBySize = make(map[float64]font.Face)
)

// faceForSize возвращает face нужного размера. TTF из CALENDAR_FONT парсится
// один раз, face строится и кэшируется отдельно на каждый размер; без шрифта
// все размеры отдают встроенный basicfont.
func faceForSize(size float64) font.Face {
	fontMu.Lock()
	defer fontMu.Unlock()

	if face, ok := faceBySize[size]; ok {
		return face
	}

	if !fontTried {
		fontTried = true
		if path := os.Getenv("CALENDAR_FONT"); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				if parsed, err := opentype.Parse(data); err == nil {
					parsedFont = parsed
				}
			}
		}
	}

	face := font.Face(basicfont.Face7x13)
	if parsedFont != nil {
		if built, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			face = built
		}
	}
	faceBySize[size] = face
	return face
}

func loadFont(dc *gg.Context, size float64) {
	dc.SetFontFace(faceForSize(size))
}

// MarkLookup отвечает, стоит ли на уроке отметка журнала
type MarkLookup func(studentID int64, dateKey string) bool

// GenerateMonthImage рисует сетку месяца: целые недели, добивочные дни
// приглушены, сегодняшний день обведён, в ячейке до четырёх плашек занятий
// и счётчик переполнения.
func GenerateMonthImage(grid *calendar.MonthGrid, today time.Time, marked MarkLookup) ([]byte, error) {
	weeks := len(grid.Days) / totalDaysInWeek
	height := headerHeight + weekdayRowHeight + weeks*cellHeight

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	cellWidth := float64(imageWidth) / totalDaysInWeek

	// Заголовок: месяц и год
	loadFont(dc, titleFontSize)
	dc.SetColor(textColor)
	title := grid.Month.String() + " " + strconv.Itoa(grid.Year)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)

	// Строка дней недели
	loadFont(dc, weekdayFontSize)
	dc.SetColor(dimTextColor)
	for i, label := range weekdayLabels {
		x := float64(i)*cellWidth + cellWidth/2
		dc.DrawStringAnchored(label, x, headerHeight+weekdayRowHeight/2, 0.5, 0.5)
	}

	todayKey := calendar.DateKey(today)
	for idx, day := range grid.Days {
		col := idx % totalDaysInWeek
		row := idx / totalDaysInWeek
		x := float64(col) * cellWidth
		y := float64(headerHeight+weekdayRowHeight) + float64(row)*cellHeight

		drawDayCell(dc, &day, x, y, cellWidth, day.DateKey == todayKey, marked)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawDayCell(dc *gg.Context, day *calendar.GridDay, x, y, w float64, isToday bool, marked MarkLookup) {
	fill := cellColor
	if !day.InMonth {
		fill = padCellColor
	}
	dc.SetColor(fill)
	dc.DrawRectangle(x+1, y+1, w-2, cellHeight-2)
	dc.Fill()

	if isToday {
		dc.SetColor(todayBorder)
		dc.SetLineWidth(3)
		dc.DrawRectangle(x+2, y+2, w-4, cellHeight-4)
		dc.Stroke()
	}

	// Номер дня
	loadFont(dc, dayNumFontSize)
	if day.InMonth {
		dc.SetColor(textColor)
	} else {
		dc.SetColor(dimTextColor)
	}
	dc.DrawString(strconv.Itoa(day.Date.Day()), x+cellPadding+2, y+cellPadding+16)

	// Плашки занятий
	loadFont(dc, chipFontSize)
	chipY := y + 30
	shown := 0
	for i := range day.Occurrences {
		if shown == maxChipsPerCell {
			break
		}
		occ := &day.Occurrences[i]
		dc.SetColor(chipFill(occ, day.DateKey, marked))
		dc.DrawRoundedRectangle(x+cellPadding, chipY, w-2*cellPadding, chipHeight, chipRadius)
		dc.Fill()

		dc.SetColor(chipTextColor)
		dc.DrawString(chipText(occ, w), x+cellPadding+6, chipY+chipHeight-8)

		chipY += chipHeight + 4
		shown++
	}

	if rest := len(day.Occurrences) - shown; rest > 0 {
		dc.SetColor(overflowColor)
		dc.DrawString("+"+strconv.Itoa(rest), x+cellPadding+2, chipY+14)
	}
}

func chipFill(occ *calendar.Occurrence, dateKey string, marked MarkLookup) color.RGBA {
	if occ.Kind == calendar.OccurrenceLesson {
		if marked != nil && marked(occ.StudentID, dateKey) {
			return markedChip
		}
		return lessonChip
	}
	if c, ok := eventChipByTag[occ.Color]; ok {
		return c
	}
	return defaultEventChip
}

func chipText(occ *calendar.Occurrence, cellWidth float64) string {
	text := occ.TimeLabel
	if text == "" {
		text = "--:--"
	}
	text += " " + occ.Label

	// грубая обрезка по ширине ячейки
	maxRunes := int(cellWidth / 9)
	runes := []rune(text)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes-1]) + "…"
	}
	return text
}
