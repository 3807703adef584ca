/*
Package template renders the short operator-facing texts of the POS:
notifications ("Margherita Pizza added to cart") and receipt lines.

Placeholders use ${name}. Money values go through Money, which formats with
golang.org/x/text/message so grouping follows the configured language.

	msgs := template.NewCatalog(template.WithCurrency("€"))
	text, err := msgs.Render(template.MsgOrderCreated, map[string]any{
	    "id":    order.ID,
	    "total": msgs.Money(order.Total),
	})

Missing variables are kept as-is by default; WithMissingAction(MissingError)
turns them into an UndefinedVariableError.
*/
package template
