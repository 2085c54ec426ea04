package schedule

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/notaneet/raspbot/model"
)

var (
	// ErrNotLoaded расписание не было загружено при старте
	ErrNotLoaded = errors.New("расписание не загружено")
	// ErrNotFound в документе нет нужной недели или дня
	ErrNotFound = errors.New("расписание не найдено")
	// ErrBadDate строка даты не в формате ДД.ММ
	ErrBadDate = errors.New("неверный формат даты")
)

// DefaultNote подставляется, когда день есть, занятий нет, а заметки не написали
const DefaultNote = "Нет занятий"

// Lookup отвечает на вопросы "что за пары сегодня/на дату/на неделе".
// Документ неизменяемый, состояние только читается - можно дергать
// из любого числа горутин без блокировок.
type Lookup struct {
	doc   *model.Document
	epoch Epoch
	loc   *time.Location
	year  int //год для дат формата ДД.ММ, 0 - брать текущий
	now   func() time.Time
}

type Option func(*Lookup)

// WithEpoch задать опорную точку четности вместо DefaultEpoch
func WithEpoch(e Epoch) Option {
	return func(l *Lookup) { l.epoch = e }
}

// WithLocation часовой пояс для "сегодня"
func WithLocation(loc *time.Location) Option {
	return func(l *Lookup) { l.loc = loc }
}

// WithYear каким годом дополнять даты ДД.ММ (для тестов)
func WithYear(year int) Option {
	return func(l *Lookup) { l.year = year }
}

// WithClock источник текущего времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(l *Lookup) { l.now = now }
}

// New собирает Lookup над документом. doc == nil допустим: все
// вызовы будут возвращать ErrNotLoaded.
func New(doc *model.Document, opts ...Option) *Lookup {
	l := &Lookup{
		doc:   doc,
		epoch: DefaultEpoch,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DayResult расписание одного дня
type DayResult struct {
	Weekday string
	Date    time.Time
	Parity  model.Parity
	Note    string        //не пустая, только когда занятий нет
	Classes []model.Class //занятия и окна по порядку
}

// DayBlock один день в недельной выдаче
type DayBlock struct {
	Weekday string
	Found   bool //есть ли такой день в варианте недели
	Note    string
	Classes []model.Class
}

// WeekResult расписание всей текущей недели, всегда 7 дней пн-вс
type WeekResult struct {
	Parity model.Parity
	Days   [7]DayBlock
}

// ForDate расписание на дату. raw == "" - сегодня, иначе строка ДД.ММ
// (год подставляется). Ошибки: ErrNotLoaded, ErrBadDate, ErrNotFound.
func (l *Lookup) ForDate(raw string) (*DayResult, error) {
	if l.doc == nil {
		return nil, ErrNotLoaded
	}

	date, err := l.resolveDate(raw)
	if err != nil {
		return nil, err
	}

	parity := ResolveParity(date, l.epoch)
	weekday := model.WeekdayName(date)

	week := l.doc.Week(parity)
	if week == nil {
		return nil, ErrNotFound
	}

	day := week.Day(weekday)
	if day == nil {
		return nil, ErrNotFound
	}

	res := &DayResult{
		Weekday: weekday,
		Date:    date,
		Parity:  parity,
	}
	if len(day.Classes) == 0 {
		res.Note = day.Note
		if res.Note == "" {
			res.Note = DefaultNote
		}
		return res, nil
	}

	res.Classes = day.Classes
	return res, nil
}

// ForWeek расписание на текущую неделю. Дней всегда 7 в порядке
// пн-вс, отсутствующие в варианте дни помечены Found == false.
func (l *Lookup) ForWeek() (*WeekResult, error) {
	if l.doc == nil {
		return nil, ErrNotLoaded
	}

	parity := ResolveParity(l.now().In(l.loc), l.epoch)
	res := &WeekResult{Parity: parity}

	week := l.doc.Week(parity)
	for i, name := range model.WeekdayNames {
		res.Days[i].Weekday = name

		var day *model.Day
		if week != nil {
			day = week.Day(name)
		}
		if day == nil {
			continue
		}

		res.Days[i].Found = true
		if len(day.Classes) == 0 {
			res.Days[i].Note = day.Note
			if res.Days[i].Note == "" {
				res.Days[i].Note = DefaultNote
			}
			continue
		}
		res.Days[i].Classes = day.Classes
	}

	return res, nil
}

// resolveDate "" - сейчас в нужном поясе, иначе разбор ДД.ММ
func (l *Lookup) resolveDate(raw string) (time.Time, error) {
	now := l.now().In(l.loc)
	if raw == "" {
		return now, nil
	}

	year := l.year
	if year == 0 {
		year = now.Year()
	}
	return ParseDayMonth(raw, year, l.loc)
}

// ParseDayMonth разбирает строку ДД.ММ в дату указанного года.
// Любое отклонение от формата (и несуществующий день месяца) - ErrBadDate.
func ParseDayMonth(raw string, year int, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 2 {
		return time.Time{}, ErrBadDate
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, ErrBadDate
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrBadDate
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date молча нормализует 31.02 в март - ловим это
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, ErrBadDate
	}

	return date, nil
}
