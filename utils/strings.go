package utils

import (
	"regexp"
	"strconv"
)

var spaceRE = regexp.MustCompile(`\s+`)

// RemoveSpaces схлопнуть повторяющиеся пробелы
func RemoveSpaces(s string) string {
	return spaceRE.ReplaceAllString(s, " ")
}

// MustAtoi конвертация строки в число, 0 при ошибке
func MustAtoi(str string) int {
	ret, err := strconv.Atoi(str)
	if err != nil {
		return 0
	}
	return ret
}

// GetOrString i-тый элемент slice, либо or, если такого нет
func GetOrString(slice []string, i int, or string) string {
	if len(slice)-1 >= i {
		return slice[i]
	}
	return or
}
