package model

import "fmt"

// Parity четность учебной недели
type Parity int

const (
	ParityOdd  Parity = 1 //нечетная неделя
	ParityEven Parity = 2 //четная неделя
)

// Other противоположная четность
func (p Parity) Other() Parity {
	if p == ParityOdd {
		return ParityEven
	}
	return ParityOdd
}

func (p Parity) String() string {
	if p == ParityOdd {
		return "нечетная"
	}
	return "четная"
}

// Day модель одного учебного дня
type Day struct {
	Name    string  `json:"day"`            //Название дня недели (Понедельник..Воскресенье)
	Classes []Class `json:"classes"`        //Все занятия и окна этого дня по порядку
	Note    string  `json:"note,omitempty"` //Заметка, когда занятий нет (например "Выходной")
}

// Week один из двух вариантов недели
type Week struct {
	Parity Parity `json:"week"` //1 - нечетная, 2 - четная
	Days   []Day  `json:"days"` //Дни недели, каких-то может не быть
}

// Day день недели по каноническому названию, nil если такого дня в варианте нет
func (w *Week) Day(name string) *Day {
	for i := range w.Days {
		if w.Days[i].Name == name {
			return &w.Days[i]
		}
	}
	return nil
}

// Document все расписание: ровно два варианта недели
type Document struct {
	Schedule []Week `json:"schedule"`
}

// Week вариант недели по четности, nil если такого нет
func (d *Document) Week(parity Parity) *Week {
	for i := range d.Schedule {
		if d.Schedule[i].Parity == parity {
			return &d.Schedule[i]
		}
	}
	return nil
}

// Validate проверяет инвариант документа: ровно две недели
// с четностями 1 и 2, без дубликатов
func (d *Document) Validate() error {
	if len(d.Schedule) != 2 {
		return fmt.Errorf("в расписании должно быть ровно 2 варианта недели, а не %d", len(d.Schedule))
	}

	seen := map[Parity]bool{}
	for _, w := range d.Schedule {
		if w.Parity != ParityOdd && w.Parity != ParityEven {
			return fmt.Errorf("неизвестная четность недели: %d", w.Parity)
		}
		if seen[w.Parity] {
			return fmt.Errorf("четность %d встречается дважды", w.Parity)
		}
		seen[w.Parity] = true
	}

	return nil
}
