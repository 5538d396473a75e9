// Package format renders money and dates the way the board shows them:
// Brazilian real with pt-BR grouping and dd/mm/yyyy dates.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencyPrefix = "R$\u00a0"
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006, 15:04"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as "R$ 15.000,00" (with a non-breaking space). The
// digits come from the decimal itself; only the grouping is locale driven.
func Currency(v decimal.Decimal) string {
	rounded := v.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	intPart, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + currencyPrefix + groupThousands(intPart) + "," + frac
}

// groupThousands groups an unsigned run of digits with the pt-BR separator.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}
	// Beyond int64: same separator, grouped by hand.
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(".")
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date formats t in loc as dd/mm/yyyy.
func Date(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(dateLayout)
}

// DateTime formats t in loc as "dd/mm/yyyy, hh:mm".
func DateTime(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(dateTimeLayout)
}

// Location loads an IANA zone, falling back to UTC.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
