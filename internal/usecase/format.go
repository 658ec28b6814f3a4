package usecase

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats an amount as $1,234.56
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// Number formats with thousands grouping and two decimals
func Number(v float64) string {
	return printer.Sprintf("%.2f", v)
}
