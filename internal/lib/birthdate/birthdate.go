// Package birthdate форматирует даты рождения для обмена с бэкендом.
// Бэкенд принимает даты строго в формате DD-MM-YYYY с ведущими нулями,
// при этом в аккаунте дата может храниться в ISO-виде.
package birthdate

import (
	"fmt"
	"time"
)

// Layout формат даты рождения, который принимает бэкенд.
const Layout = "02-01-2006"

// Входные форматы, в которых дата может прийти из аккаунта.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	Layout,
}

// Format приводит дату рождения к формату DD-MM-YYYY.
// Возвращает ошибку, если строка не распознана ни одним из известных форматов.
func Format(raw string) (string, error) {
	const op = "birthdate.Format"
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Format(Layout), nil
		}
	}
	return "", fmt.Errorf("%s: unsupported date format: %q", op, raw)
}
