package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldName приводит название к ключу сравнения: NFC + Unicode case folding.
// Акценты сохраняются: "Saint-Étienne" и "saint-étienne" совпадают, "Saint-Etienne" - нет.
func FoldName(name string) string {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// SameName - регистронезависимое сравнение названий коммун
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
