// Package router classifies raw UI input events into named channels and
// fans them out to registered handlers.
//
// A UI toolkit adapter translates its native events into Event values whose
// Target is an Element tree, then calls Dispatch. The router never owns the
// elements; it only reads their ids, classes, data attributes, disabled flags
// and values.
//
// # Channels
//
//	action:<name>     element carries Data["action"]
//	click:.<class>    closest element (target or ancestor) with the class
//	click:#<id>       target id
//	input:#<id>       target id, Payload.Value set
//	change:#<id>      target id, Payload.Value set
//	submit:#<id>      form id, Payload.FormData set
//	search:input      target carries the search class, Payload.Query set
//
// A click fires at most one action channel. When an action fires, nothing
// else is classified for that click. Otherwise the closest class match and the
// target id match may both fire.
//
// # Failure isolation
//
// Handlers run synchronously in registration order. An error or panic in one
// handler is logged, counted and passed to the OnError hook; the remaining
// handlers still run.
//
//	r := router.New(router.WithLogger(logger))
//	r.OnAction("checkout", func(ctx context.Context, p *router.Payload) error {
//	    return orders.Checkout(ctx)
//	})
//	r.Dispatch(ctx, router.NewEvent(router.KindClick, button))
package router
