// Package render превращает результаты поиска по расписанию в текст
// для чата. Здесь только форматирование, никакой логики выбора недели.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notaneet/raspbot/model"
	"github.com/notaneet/raspbot/schedule"
)

// Class одна строка про занятие или окно
func Class(c model.Class) string {
	if c.IsWindow() {
		return fmt.Sprintf("🪟 Окно: %s (%s)", c.Window, c.Duration)
	}
	return fmt.Sprintf("⏰ %s\n📚 %s\n🏢 Аудитория: %s\n📍 %s\n", c.Time, c.Subject, c.Room, c.Address)
}

// Day сообщение с расписанием на один день
func Day(r *schedule.DayResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s (%s)\n\n", r.Weekday, r.Date.Format("02.01.2006"))

	if r.Note != "" {
		sb.WriteString(r.Note)
		return sb.String()
	}

	for _, c := range r.Classes {
		sb.WriteString(Class(c))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Week сообщение с расписанием на всю неделю
func Week(r *schedule.WeekResult) string {
	var sb strings.Builder
	sb.WriteString("📅 Расписание на неделю\n\n")

	for _, d := range r.Days {
		fmt.Fprintf(&sb, "📅 %s:\n", d.Weekday)

		switch {
		case !d.Found:
			sb.WriteString("   Расписание не найдено\n")
		case d.Note != "":
			fmt.Fprintf(&sb, "   %s\n", d.Note)
		default:
			for _, c := range d.Classes {
				fmt.Fprintf(&sb, "   %s\n", Class(c))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Message фиксированный ответ для каждой ошибки поиска
func Message(err error) string {
	switch {
	case errors.Is(err, schedule.ErrNotLoaded):
		return "❌ Расписание не загружено"
	case errors.Is(err, schedule.ErrBadDate):
		return "❌ Неверный формат даты. Используйте формат ДД.ММ"
	case errors.Is(err, schedule.ErrNotFound):
		return "❌ Расписание не найдено"
	default:
		return "❌ Ошибка при получении расписания"
	}
}
