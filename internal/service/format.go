package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// FormatMoney renders a whole amount with thousands separators, e.g.
// "PKR 28,500".
func FormatMoney(symbol string, amount int64) string {
	out := numbers.Sprintf("%d", amount)
	if symbol == "" {
		return out
	}
	return symbol + " " + out
}

// FormatKms renders a distance with one decimal, e.g. "1,386.7 km".
func FormatKms(kms float64) string {
	return numbers.Sprintf("%.1f km", kms)
}
