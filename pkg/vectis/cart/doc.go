/*
Package cart implements cart pricing: line and subtotal math, the two tax
conventions, and the store-backed Engine that applies cart mutations.

# Pricing

A line contributes

	unitPrice*quantity + Σ(extra.unitPrice*extra.quantity)*quantity

so extras are charged per unit of their parent line. The subtotal is the sum
of all lines.

Two tax conventions are kept separate. CheckoutTotals adds the checkout rate
on top of the subtotal when an order is created. HistoryTotals splits a
stored total back into subtotal and tax when an old order is shown again.

# Mutations

Engine never edits the cart held by the store. It clones the current cart,
changes the clone and writes it back with SetPath, so each mutation produces
one undo snapshot and one "cart" notification. A rejected mutation (unknown
line, quantity floor) returns an error and leaves the store untouched.
*/
package cart
