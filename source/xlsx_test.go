package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/notaneet/raspbot/model"
)

func addRow(sh *xlsx.Sheet, values ...string) {
	row := sh.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func sampleWB(t *testing.T) *xlsx.File {
	wb := xlsx.NewFile()

	odd, err := wb.AddSheet("Нечетная неделя")
	require.NoError(t, err)
	addRow(odd, "Понедельник", "11.30 - 13.30", "Название предмета", "306", "Кронверкский пр., 49")
	addRow(odd, "", "30 минут", "Окно", "", "")
	addRow(odd, "", "14:00-15:30", "Физика", "101", "Кронверкский пр., 49")
	addRow(odd, "Воскресенье", "", "Выходной наконец то!", "", "")

	even, err := wb.AddSheet("Четная неделя")
	require.NoError(t, err)
	addRow(even, "Понедельник", "11:30-13:00", "Название предмета", "306", "Кронверкский пр., 49")

	// Посторонние листы молча пропускаются
	_, err = wb.AddSheet("Примечания")
	require.NoError(t, err)

	return wb
}

func TestParseWB(t *testing.T) {
	doc, err := parseWB(sampleWB(t))
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	odd := doc.Week(model.ParityOdd)
	require.NotNil(t, odd)
	require.Len(t, odd.Days, 2)

	monday := odd.Day("Понедельник")
	require.NotNil(t, monday)
	require.Len(t, monday.Classes, 3)

	// Время нормализуется к виду ЧЧ:ММ-ЧЧ:ММ
	assert.Equal(t, "11:30-13:30", monday.Classes[0].Time)
	assert.Equal(t, "Название предмета", monday.Classes[0].Subject)
	assert.Equal(t, "306", monday.Classes[0].Room)

	assert.True(t, monday.Classes[1].IsWindow())
	assert.Equal(t, "Окно", monday.Classes[1].Window)
	assert.Equal(t, "30 минут", monday.Classes[1].Duration)

	assert.Equal(t, "14:00-15:30", monday.Classes[2].Time)

	sunday := odd.Day("Воскресенье")
	require.NotNil(t, sunday)
	assert.Empty(t, sunday.Classes)
	assert.Equal(t, "Выходной наконец то!", sunday.Note)

	even := doc.Week(model.ParityEven)
	require.NotNil(t, even)
	assert.Nil(t, even.Day("Воскресенье"))
}

func TestParseWBMissingVariant(t *testing.T) {
	wb := xlsx.NewFile()
	sh, err := wb.AddSheet("Нечетная")
	require.NoError(t, err)
	addRow(sh, "Понедельник", "10:00-11:30", "Математика", "1", "а")

	_, err = parseWB(wb)
	assert.Error(t, err, "документ с одним вариантом недели невалиден")
}

func TestSheetParity(t *testing.T) {
	tests := []struct {
		name   string
		parity model.Parity
		ok     bool
	}{
		{"Нечетная неделя", model.ParityOdd, true},
		{"НЕЧЕТНАЯ", model.ParityOdd, true},
		{"Четная неделя", model.ParityEven, true},
		{"четная", model.ParityEven, true},
		{"Примечания", 0, false},
	}

	for _, tt := range tests {
		parity, ok := sheetParity(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if ok {
			assert.Equal(t, tt.parity, parity, tt.name)
		}
	}
}

func TestNormalizeTimeRange(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"11.30 - 13.30", "11:30-13:30"},
		{"11:30-13:30", "11:30-13:30"},
		{"9.00 - 10.30", "09:00-10:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTimeRange(tt.in), tt.in)
	}
}
