package model

import "time"

// WeekdayNames канонические русские названия дней недели, 0 - понедельник.
// Таблица фиксирована и не зависит от локали.
var WeekdayNames = [7]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

// WeekdayIndex номер дня недели даты t, 0 - понедельник .. 6 - воскресенье
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayName каноническое название дня недели даты t
func WeekdayName(t time.Time) string {
	return WeekdayNames[WeekdayIndex(t)]
}
