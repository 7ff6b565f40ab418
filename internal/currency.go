package internal

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts for display. The report is single-business and
// the administration invoices in euros, so only EUR with the Dutch locale
// is wired up.
type Currency struct {
	Code    string
	symbol  string
	printer *message.Printer
}

// EUR returns the euro formatter with Dutch number formatting.
func EUR() Currency {
	return Currency{
		Code:    "EUR",
		symbol:  "€",
		printer: message.NewPrinter(language.Dutch),
	}
}

// Format formats an amount with two decimals and the currency symbol.
func (c Currency) Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	formatted := c.printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return c.symbol + " " + formatted
}
