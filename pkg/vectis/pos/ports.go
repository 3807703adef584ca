package pos

import (
	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/order"
)

// Level is a notification severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier shows transient messages to the operator.
type Notifier interface {
	Notify(level Level, message string)
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Printer sends a document to the receipt printer.
type Printer interface {
	Print(document string) error
}

// View re-renders the parts of the screen driven by state changes.
type View interface {
	RenderCart(lines cart.Cart, totals cart.Totals, itemCount int)
	RenderProducts(products []catalog.Product)
	RenderOrders(orders []order.Record)
	RenderOrderDetails(rec order.Record, totals cart.Totals, selected bool)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}

// alwaysConfirm approves every prompt.
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }

type nopPrinter struct{}

func (nopPrinter) Print(string) error { return nil }

type nopView struct{}

func (nopView) RenderCart(cart.Cart, cart.Totals, int)             {}
func (nopView) RenderProducts([]catalog.Product)                   {}
func (nopView) RenderOrders([]order.Record)                        {}
func (nopView) RenderOrderDetails(order.Record, cart.Totals, bool) {}
