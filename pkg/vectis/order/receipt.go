package order

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
)

// MoneyFormatter renders an amount with its currency.
type MoneyFormatter interface {
	Money(amount float64) string
}

// ReceiptHeader is printed at the top of every receipt.
const ReceiptHeader = "Simplified Vectis"

// Receipt renders the printable document for rec. Totals use the history
// convention: taxRate is the share of the stored total that is tax.
func Receipt(rec Record, money MoneyFormatter, taxRate float64) string {
	var b strings.Builder
	totals := cart.HistoryTotals(rec.Total, taxRate)

	fmt.Fprintf(&b, "%s\n\n", ReceiptHeader)
	fmt.Fprintf(&b, "Order #%s\n", rec.Number())
	fmt.Fprintf(&b, "Date: %s\n", rec.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Customer: %s\n", customerOrDefault(rec.Customer))
	fmt.Fprintf(&b, "Status: %s\n\n", strings.ToUpper(string(statusOrDefault(rec.Status))))

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Item\tQty\tPrice\tTotal\t")
	for _, l := range rec.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n",
			l.Name, l.Quantity, money.Money(l.UnitPrice), money.Money(cart.LineTotal(l)))
		for _, id := range l.ExtraIDs() {
			ex := l.Extras[id]
			fmt.Fprintf(tw, "  + %s\t%d\t%s\t%s\t\n",
				ex.Name, ex.Quantity, money.Money(ex.UnitPrice), money.Money(ex.UnitPrice*float64(ex.Quantity)))
		}
	}
	tw.Flush()

	fmt.Fprintf(&b, "\nSubtotal: %s\n", money.Money(totals.Subtotal))
	fmt.Fprintf(&b, "Tax (%d%%): %s\n", int(math.Round(taxRate*100)), money.Money(totals.Tax))
	fmt.Fprintf(&b, "Total: %s\n\n", money.Money(totals.Total))
	b.WriteString("Thank you for your business!\n")
	return b.String()
}

func customerOrDefault(c string) string {
	if c == "" {
		return DefaultCustomer
	}
	return c
}

func statusOrDefault(s Status) Status {
	if s == "" {
		return StatusCompleted
	}
	return s
}
