package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/notaneet/raspbot/model"
	"github.com/notaneet/raspbot/utils"
)

// Ожидаемая раскладка листа:
// столбец A - день недели (пустой, пока день продолжается),
// B - время пары, C - предмет, D - аудитория, E - адрес.
// Лист на каждый вариант недели, четность в названии листа.
const (
	dayColumn     = 0
	timeColumn    = 1
	subjectColumn = 2
	roomColumn    = 3
	addressColumn = 4
)

// Время пары: "11:30-13:30", разделители . и : равнозначны
var timeRangeRE = regexp.MustCompile(`^\d{1,2}[.:]\d{2}\s*-\s*\d{1,2}[.:]\d{2}$`)

// Окна в предметной колонке пишут как "Окно", "Окно между парами" и т.п.
var windowRE = regexp.MustCompile(`(?i)^окно`)

// parseWB собирает из книги документ с двумя вариантами недели
func parseWB(wb *xlsx.File) (*model.Document, error) {
	doc := &model.Document{}

	for _, sh := range wb.Sheets {
		parity, ok := sheetParity(sh.Name)
		if !ok {
			continue
		}

		week, err := parseSheet(sh, parity)
		if err != nil {
			return nil, fmt.Errorf("лист %q: %w", sh.Name, err)
		}
		doc.Schedule = append(doc.Schedule, *week)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// sheetParity четность недели по названию листа.
// "нечет" проверяется раньше, потому что содержит в себе "чет".
func sheetParity(name string) (model.Parity, bool) {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "нечет") {
		return model.ParityOdd, true
	}
	if strings.Contains(lower, "чет") {
		return model.ParityEven, true
	}
	return 0, false
}

func parseSheet(sh *xlsx.Sheet, parity model.Parity) (*model.Week, error) {
	week := &model.Week{Parity: parity}

	var day *model.Day
	for row := 0; row < sh.MaxRow; row++ {
		cells, err := rowStrings(sh, row)
		if err != nil {
			return nil, err
		}

		// Непустая ячейка в столбце дня начинает новый день
		if name := cells[dayColumn]; name != "" {
			if day != nil {
				week.Days = append(week.Days, *day)
			}
			day = &model.Day{Name: name}
		}
		if day == nil {
			continue
		}

		timeCell := cells[timeColumn]
		subject := cells[subjectColumn]

		switch {
		case windowRE.MatchString(subject):
			day.Classes = append(day.Classes, model.Class{
				Window:   subject,
				Duration: timeCell,
			})
		case timeRangeRE.MatchString(timeCell):
			day.Classes = append(day.Classes, model.Class{
				Time:    normalizeTimeRange(timeCell),
				Subject: subject,
				Room:    cells[roomColumn],
				Address: cells[addressColumn],
			})
		case subject != "" && len(day.Classes) == 0:
			// Строка без времени и занятий - заметка дня ("Выходной" и т.п.)
			day.Note = subject
		}
	}
	if day != nil {
		week.Days = append(week.Days, *day)
	}

	return week, nil
}

func rowStrings(sh *xlsx.Sheet, row int) ([]string, error) {
	cells := make([]string, addressColumn+1)
	for col := range cells {
		cell, err := sh.Cell(row, col)
		if err != nil {
			return nil, err
		}
		cells[col] = strings.TrimSpace(utils.RemoveSpaces(cell.String()))
	}
	return cells, nil
}

// normalizeTimeRange приводит "11.30 - 13.30" к виду "11:30-13:30"
func normalizeTimeRange(raw string) string {
	parts := strings.SplitN(raw, "-", 2)
	return normalizeTime(parts[0]) + "-" + normalizeTime(utils.GetOrString(parts, 1, ""))
}

func normalizeTime(raw string) string {
	cleaned := strings.NewReplacer(".", ":", " ", "").Replace(raw)
	parts := strings.SplitN(cleaned, ":", 2)
	if len(parts) != 2 {
		return cleaned
	}
	return fmt.Sprintf("%02d:%02d", utils.MustAtoi(parts[0]), utils.MustAtoi(parts[1]))
}
