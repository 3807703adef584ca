package template

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message names understood by Catalog.
const (
	MsgAddedToCart     = "cart.added"
	MsgRemovedFromCart = "cart.removed"
	MsgCartCleared     = "cart.cleared"
	MsgCartEmpty       = "cart.empty"
	MsgOrderCreated    = "order.created"
	MsgOrderNotFound   = "order.not_found"
	MsgScreenSwitched  = "screen.switched"
)

var defaultMessages = map[string]string{
	MsgAddedToCart:     "${name} added to cart",
	MsgRemovedFromCart: "${name} removed from cart",
	MsgCartCleared:     "Cart cleared",
	MsgCartEmpty:       "Cart is empty",
	MsgOrderCreated:    "Order #${id} created successfully - ${total}",
	MsgOrderNotFound:   "Order ${id} not found",
	MsgScreenSwitched:  "Switched to ${screen}",
}

// Catalog holds named message templates and money formatting.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]string
	expander *Expander
	printer  *message.Printer
	currency string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCurrency sets the symbol prefixed to money values. Default "€".
func WithCurrency(symbol string) Option {
	return func(c *Catalog) {
		c.currency = symbol
	}
}

// WithLanguage sets the language used for number formatting. Default English.
func WithLanguage(tag language.Tag) Option {
	return func(c *Catalog) {
		c.printer = message.NewPrinter(tag)
	}
}

// WithMissingAction sets how missing variables are handled.
func WithMissingAction(action MissingAction) Option {
	return func(c *Catalog) {
		c.expander = NewExpander(action)
	}
}

// NewCatalog creates a Catalog preloaded with the default POS messages.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		messages: make(map[string]string, len(defaultMessages)),
		expander: NewExpander(MissingKeep),
		printer:  message.NewPrinter(language.English),
		currency: "€",
	}
	for k, v := range defaultMessages {
		c.messages[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set registers or replaces a message template.
func (c *Catalog) Set(name, tmpl string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[name] = tmpl
}

// Render expands the named message with vars.
func (c *Catalog) Render(name string, vars map[string]any) (string, error) {
	c.mu.RLock()
	tmpl, ok := c.messages[name]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown message %q", name)
	}
	return c.expander.Expand(tmpl, vars)
}

// Money formats an amount with two decimals and the catalog currency.
// Thousands are grouped for the catalog language: 1234.5 is "€1,234.50".
func (c *Catalog) Money(amount float64) string {
	return c.currency + c.printer.Sprintf("%.2f", amount)
}
