package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/vectis/pkg/vectis/router"
)

func noopHandler(context.Context, *router.Payload) error { return nil }

// BenchmarkDispatch_Action measures a click on a declarative action.
func BenchmarkDispatch_Action(b *testing.B) {
	r := router.New()
	r.OnAction("add-to-cart", noopHandler)
	el := router.NewElement("").WithData("action", "add-to-cart").WithData("product-id", "1")
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch(ctx, router.NewEvent(router.KindClick, el))
	}
}

// BenchmarkDispatch_DeepClassWalk measures a click that walks 20 ancestors
// before finding a class binding.
func BenchmarkDispatch_DeepClassWalk(b *testing.B) {
	r := router.New()
	r.OnClick(".vect-product-card", noopHandler)
	leaf := buildTree(20)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch(ctx, router.NewEvent(router.KindClick, leaf))
	}
}

// BenchmarkDispatch_SearchInput measures an input event on the search field.
func BenchmarkDispatch_SearchInput(b *testing.B) {
	r := router.New()
	r.OnSearch(noopHandler)
	r.OnInput("#vect-search-input", noopHandler)
	el := router.NewElement("vect-search-input", router.DefaultSearchClass)
	el.Value = "pizza"
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch(ctx, router.NewEvent(router.KindInput, el))
	}
}

// BenchmarkDispatch_WithMiddleware measures an action behind recovery and
// metrics middleware.
func BenchmarkDispatch_WithMiddleware(b *testing.B) {
	r := router.New()
	r.Use(router.RecoveryMiddleware())
	r.Use(router.MetricsMiddleware(nil))
	r.OnAction("checkout", noopHandler)
	el := router.NewElement("").WithData("action", "checkout")
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch(ctx, router.NewEvent(router.KindClick, el))
	}
}

// buildTree returns the leaf of a chain of depth elements under a product card.
func buildTree(depth int) *router.Element {
	cur := router.NewElement("", "vect-product-card")
	for i := 0; i < depth; i++ {
		cur = cur.Append(router.NewElement("", "wrapper"))
	}
	return cur
}
