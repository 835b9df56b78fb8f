// Package format renders monetary values the way Brazilian utility invoices
// print them.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL returns a currency string with the R$ symbol and Brazilian separators
// (e.g., "R$ 1.234,56").
func BRL(amount float64) string {
	return printer.Sprintf("R$ %.2f", amount)
}

// Tariff formats a per-kWh rate with the six decimal places utilities use on
// invoices (e.g., "R$ 1,138131").
func Tariff(rate float64) string {
	return printer.Sprintf("R$ %.6f", rate)
}

// Kwh formats an energy quantity in whole kilowatt-hours with thousands
// separators.
func Kwh(quantity float64) string {
	return printer.Sprintf("%.0f kWh", quantity)
}
