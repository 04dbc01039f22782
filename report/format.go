package report

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency 展示用金额，如 $1,234；未定义时为 N/A
func FormatCurrency(v Value) string {
	if !v.Valid {
		return NA
	}
	amount := math.Round(v.Amount)
	if amount == 0 {
		return "$0"
	}
	if amount < 0 {
		return printer.Sprintf("-$%.0f", -amount)
	}
	return printer.Sprintf("$%.0f", amount)
}

// FormatSqft 展示用面积，保留一位小数，如 1,234.5
func FormatSqft(v Value) string {
	if !v.Valid {
		return NA
	}
	return printer.Sprintf("%.1f", v.Amount)
}
