// Package receipt renders the flat-text bill receipt that gets archived to
// disk and returned over HTTP. The layout is fixed: existing tooling parses
// these files, so field order and separators must not change.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanhaiyya/billing-api/pkg/money"
)

const separator = "-----------------------"

// DateTimeLayout is the receipt timestamp format (DD-MM-YYYY HH:MM:SS).
const DateTimeLayout = "02-01-2006 15:04:05"

// Line is a single billed item on the receipt.
type Line struct {
	Name           string
	UnitPricePaise int64
	Quantity       int
	LineTotalPaise int64
}

// Receipt holds the logical content of a printed bill.
type Receipt struct {
	StoreName       string
	Currency        string
	IssuedAt        time.Time
	Table           string
	Mobile          string
	Lines           []Line
	SubtotalPaise   int64
	DiscountPercent decimal.Decimal
	NetTotalPaise   int64
}

// Render produces the UTF-8 receipt text:
//
//	header, separator, date/time, table, mobile, separator,
//	one line per item as "<name>  <cur><price> x <qty>  =  <cur><total>",
//	separator, subtotal, discount, net total, thank-you line.
func (r *Receipt) Render() string {
	var b strings.Builder

	b.WriteString(r.StoreName + "\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Date: %s\n", r.IssuedAt.Format(DateTimeLayout))
	fmt.Fprintf(&b, "Table: %s\n", r.Table)
	fmt.Fprintf(&b, "Mobile: %s\n", r.Mobile)
	b.WriteString(separator + "\n")

	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%s  %s%s x %d  =  %s%s\n",
			line.Name,
			r.Currency, money.Format(line.UnitPricePaise),
			line.Quantity,
			r.Currency, money.Format(line.LineTotalPaise),
		)
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Subtotal: %s%s\n", r.Currency, money.Format(r.SubtotalPaise))
	fmt.Fprintf(&b, "Discount: %s%%\n", money.FormatPercent(r.DiscountPercent))
	fmt.Fprintf(&b, "Net Total: %s%s\n", r.Currency, money.Format(r.NetTotalPaise))
	b.WriteString("\nThank You! Visit Again\n")

	return b.String()
}
