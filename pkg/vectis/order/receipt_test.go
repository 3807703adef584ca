package order_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/vectis/pkg/vectis/order"
	"github.com/randalmurphal/vectis/pkg/vectis/template"
)

func TestReceipt(t *testing.T) {
	rec := order.SampleOrders(now)[0]
	out := order.Receipt(rec, template.NewCatalog(), 0.15)

	for _, want := range []string{
		order.ReceiptHeader,
		"Order #1001",
		"Customer: Walk-in Customer",
		"Status: COMPLETED",
		"Margherita Pizza",
		"€35.00",
		"+ Extra Cheese",
		"+ Mushrooms",
		"€3.00",
		"Subtotal: €28.90",
		"Tax (15%): €5.10",
		"Total: €34.00",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Extra Cheese"), strings.Index(out, "Mushrooms"))
}

func TestReceipt_Defaults(t *testing.T) {
	rec := order.SampleOrders(now)[1]
	rec.Customer = ""
	rec.Status = ""
	out := order.Receipt(rec, template.NewCatalog(template.WithCurrency("$")), 0.15)
	assert.Contains(t, out, "Customer: Walk-in Customer")
	assert.Contains(t, out, "Status: COMPLETED")
	assert.Contains(t, out, "Total: $22.50")
}
