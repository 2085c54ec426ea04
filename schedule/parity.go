package schedule

import (
	"time"

	"github.com/notaneet/raspbot/model"
)

// Epoch опорная точка для вычисления четности: дата и четность недели,
// которой эта дата принадлежит. Менять только осознанно - от нее
// зависят все будущие вычисления.
type Epoch struct {
	Date   time.Time
	Parity model.Parity
}

// DefaultEpoch 12 октября 2025, воскресенье, конец четной недели.
// Отсчет недель идет от самой даты: неделя 13-19 октября дает ноль
// полных недель и остается четной, неделя с 20 октября - нечетная.
var DefaultEpoch = Epoch{
	Date:   time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
	Parity: model.ParityEven,
}

// ResolveParity четность недели, которой принадлежит date.
// Дата приводится к понедельнику своей недели, поэтому все дни
// одной недели (пн-вс) дают один и тот же результат. Определена
// для любых дат, в том числе до эпохи.
func ResolveParity(date time.Time, epoch Epoch) model.Parity {
	monday := weekMonday(date)
	days := daysBetween(epoch.Date, monday)
	weeks := floorDiv(days, 7)

	if floorMod(weeks, 2) == 0 {
		return epoch.Parity
	}
	return epoch.Parity.Other()
}

// weekMonday понедельник недели, которой принадлежит t (полночь)
func weekMonday(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -model.WeekdayIndex(t))
}

// daysBetween целое число календарных суток от from до to.
// Обе даты нормализуются в UTC-полночь, чтобы перевод часов не
// ломал деление на 24 часа.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// floorDiv деление с округлением вниз (в Go / округляет к нулю)
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return ((a % b) + b) % b
}
