package export

import (
	"bytes"
	"fmt"

	"github.com/soundcheckk/studio_bot/internal/attendance"
	"github.com/xuri/excelize/v2"
)

// BuildAttendanceReport собирает XLSX-отчёт посещаемости за месяц:
// строка на ученика, итоговая строка по студии
func BuildAttendanceReport(title string, perStudent []attendance.StudentMonth, summary attendance.StudioSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Посещаемость"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	if err := f.SetCellStr(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", bold)

	header := []string{"Ученик", "Длительность", "Запланировано (ед.)", "Прошло (ед.)", "Посещено (ед.)", "Пропуски (ед.)", "Отработки (ед.)"}
	for col, hdr := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		if err := f.SetCellStr(sheet, cell, hdr); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		_ = f.SetCellStyle(sheet, cell, cell, bold)
	}

	for r, m := range perStudent {
		row := r + 4
		values := []interface{}{
			m.Name,
			m.DurationClass,
			m.TotalLessons,
			m.LessonsSoFar,
			m.AttendedUnits,
			m.NoShowUnits,
			m.MakeupUnits,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	totalRow := len(perStudent) + 5
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	_ = f.SetCellStr(sheet, cell, fmt.Sprintf("Итого по студии (%d учеников)", summary.ActiveStudents))
	_ = f.SetCellStyle(sheet, cell, cell, bold)
	cell, _ = excelize.CoordinatesToCellName(3, totalRow)
	_ = f.SetCellValue(sheet, cell, summary.ScheduledUnits)
	cell, _ = excelize.CoordinatesToCellName(5, totalRow)
	_ = f.SetCellValue(sheet, cell, summary.AttendedUnits)

	// ширина под русские заголовки
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "G", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}
