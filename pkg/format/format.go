// Package format renders amounts and timestamps the way the admin panel displays them.
package format

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const pesoSymbol = "₱"

var php = currency.MustParseISO("PHP")

// Currency formats an amount in Philippine pesos with grouping and up to the
// currency's standard number of fraction digits (trailing zeros dropped).
func Currency(amount float64) string {
	scale, _ := currency.Standard.Rounding(php)
	return render(amount, scale)
}

// CurrencyWhole formats an amount in pesos rounded to whole units.
func CurrencyWhole(amount float64) string {
	return render(math.Round(amount), 0)
}

// Number formats an integer count with grouping separators.
func Number(n int) string {
	return message.NewPrinter(language.English).Sprint(number.Decimal(n))
}

// Date renders a timestamp as "Mar 15, 2024, 02:30 PM".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// ShortDate renders the calendar date only.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func render(amount float64, maxFraction int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	p := message.NewPrinter(language.English)
	body := p.Sprint(number.Decimal(amount, number.MinFractionDigits(0), number.MaxFractionDigits(maxFraction)))
	return sign + pesoSymbol + body
}
