package pos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/order"
	"github.com/randalmurphal/vectis/pkg/vectis/router"
	"github.com/randalmurphal/vectis/pkg/vectis/screen"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
	"github.com/randalmurphal/vectis/pkg/vectis/template"
)

// Data attribute keys read by the handlers.
const (
	DataProductID    = "product-id"
	DataItemIndex    = "item-index"
	DataSize         = "size"
	DataIngredientID = "ingredient-id"
	DataOrderID      = "order-id"
	DataCategory     = "category"
)

// Selectors and actions the terminal markup uses.
const (
	SelectorProductCard  = ".vect-product-card"
	SelectorCategoryItem = ".vect-category-item"
	SelectorOrderItem    = ".vect-order-item"
	SelectorQuantity     = ".vect-quantity-value"
	SelectorSearchInput  = "#vect-search-input"
	SelectorOrderSearch  = "#order-search"

	ActionAddToCart         = "add-to-cart"
	ActionRemoveFromCart    = "remove-from-cart"
	ActionIncrease          = "increase"
	ActionDecrease          = "decrease"
	ActionClearCart         = "clear-cart"
	ActionCheckout          = "checkout"
	ActionPrintOrder        = "print-order"
	ActionCloseOrderDetails = "close-order-details"
	ActionSelectSize        = "select-size"
	ActionToggleExtras      = "toggle-extras"
	ActionIncreaseExtra     = "increase-extra"
	ActionDecreaseExtra     = "decrease-extra"
	ActionOrdersItems       = "orders-items"
	ActionOrdersList        = "orders-list"
)

// ClearCartPrompt is asked before the cart is emptied.
const ClearCartPrompt = "Are you sure you want to clear the cart?"

var screenTitles = map[string]string{
	screen.OrderCreation: "Orders Items",
	screen.OrdersList:    "Orders List",
}

func (a *App) registerHandlers() {
	r := a.router
	r.Use(router.RecoveryMiddleware())
	r.Use(router.LoggingMiddleware(a.logger))

	a.track(
		r.OnAction(ActionAddToCart, a.addToCart),
		r.OnAction(ActionRemoveFromCart, a.removeFromCart),
		r.OnAction(ActionIncrease, a.increase),
		r.OnAction(ActionDecrease, a.decrease),
		r.OnAction(ActionClearCart, a.clearCart),
		r.OnAction(ActionCheckout, a.placeOrder),
		r.OnAction(ActionPrintOrder, a.printOrder),
		r.OnAction(ActionCloseOrderDetails, a.closeOrderDetails),
		r.OnAction(ActionSelectSize, a.selectSize),
		r.OnAction(ActionToggleExtras, a.toggleExtras),
		r.OnAction(ActionIncreaseExtra, a.increaseExtra),
		r.OnAction(ActionDecreaseExtra, a.decreaseExtra),
		r.OnAction(ActionOrdersItems, a.switchTo(screen.OrderCreation)),
		r.OnAction(ActionOrdersList, a.switchTo(screen.OrdersList)),

		r.OnClick(SelectorProductCard, a.addToCart),
		r.OnClick(SelectorCategoryItem, a.selectCategory),
		r.OnClick(SelectorOrderItem, a.showOrder),

		r.OnInput(SelectorSearchInput, a.searchProducts),
		r.OnInput(SelectorOrderSearch, a.searchOrders),
		r.OnChange(SelectorQuantity, a.setQuantity),

		r.OnKeyboard("z", router.KeyOptions{Ctrl: true}, a.undo),
		r.OnKeyboard("Escape", router.KeyOptions{}, a.closeOrderDetails),
	)
}

func (a *App) subscribeViews() {
	renderProducts := func(state.Change) error {
		a.view.RenderProducts(a.VisibleProducts())
		return nil
	}
	a.track(
		a.store.Subscribe(state.PathCart, func(state.Change) error {
			a.renderCart()
			return nil
		}),
		a.store.Subscribe(state.PathCurrentCategory, renderProducts),
		a.store.Subscribe(state.PathSearchQuery, renderProducts),
		a.store.Subscribe(state.PathOrders, func(state.Change) error {
			a.view.RenderOrders(a.history.All())
			return nil
		}),
		// Undo and reset replace the whole tree.
		a.store.Subscribe(state.Wildcard, func(ch state.Change) error {
			if ch.Path == state.Wildcard {
				a.renderAll()
			}
			return nil
		}),
	)
}

// track keeps unsubscribe funcs of both registries for Close.
func (a *App) track(unsubs ...func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unsubs = append(a.unsubs, unsubs...)
}

func (a *App) renderCart() {
	a.view.RenderCart(a.engine.Lines(), a.engine.Totals(), a.engine.ItemCount())
}

func (a *App) renderOrderDetails() {
	rec, ok := a.history.Selected()
	if !ok {
		a.view.RenderOrderDetails(order.Record{}, cart.Totals{}, false)
		return
	}
	totals, err := a.history.Summary(rec.ID)
	if err != nil {
		a.logger.Warn("order summary failed", "order_id", rec.ID, "error", err)
	}
	a.view.RenderOrderDetails(rec, totals, true)
}

func (a *App) renderAll() {
	a.renderCart()
	a.view.RenderProducts(a.VisibleProducts())
	a.view.RenderOrders(a.history.All())
	a.renderOrderDetails()
}

// notify renders a catalog message and hands it to the notifier.
func (a *App) notify(level Level, name string, vars map[string]any) {
	msg, err := a.messages.Render(name, vars)
	if err != nil {
		a.logger.Warn("notification not rendered", "message", name, "error", err)
		return
	}
	a.notifier.Notify(level, msg)
}

func itemIndex(p *router.Payload) (int, error) {
	raw := p.Data[DataItemIndex]
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: item index %q", cart.ErrLineNotFound, raw)
	}
	return i, nil
}

func orderID(p *router.Payload) (int64, error) {
	raw := p.Data[DataOrderID]
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", order.ErrNotFound, raw)
	}
	return id, nil
}

func (a *App) addToCart(_ context.Context, p *router.Payload) error {
	product, err := a.catalog.ProductByRef(p.Data[DataProductID])
	if err != nil {
		return err
	}
	if err := a.engine.AddToCart(product); err != nil {
		return err
	}
	a.notify(LevelSuccess, template.MsgAddedToCart, map[string]any{"name": product.Name})
	return nil
}

func (a *App) removeFromCart(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	line, err := a.engine.RemoveAt(i)
	if err != nil {
		return err
	}
	a.notify(LevelInfo, template.MsgRemovedFromCart, map[string]any{"name": line.Name})
	return nil
}

func (a *App) increase(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	return a.engine.IncreaseAt(i)
}

func (a *App) decrease(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	err = a.engine.DecreaseAt(i)
	if errors.Is(err, cart.ErrQuantityFloor) {
		return nil
	}
	return err
}

func (a *App) setQuantity(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	return a.engine.SetQuantityAt(i, p.Value)
}

func (a *App) clearCart(_ context.Context, _ *router.Payload) error {
	if !a.confirmer.Confirm(ClearCartPrompt) {
		return nil
	}
	if err := a.engine.Clear(); err != nil {
		return err
	}
	a.notify(LevelInfo, template.MsgCartCleared, nil)
	return nil
}

func (a *App) placeOrder(ctx context.Context, _ *router.Payload) error {
	rec, err := a.checkout.Place(ctx)
	if errors.Is(err, order.ErrEmptyCart) {
		a.notify(LevelWarning, template.MsgCartEmpty, nil)
		return nil
	}
	if err != nil {
		return err
	}
	a.notify(LevelSuccess, template.MsgOrderCreated, map[string]any{
		"id":    rec.Number(),
		"total": a.messages.Money(rec.Total),
	})
	return nil
}

// printOrder prints the order named by the element, or the selected order
// when the element carries no id.
func (a *App) printOrder(_ context.Context, p *router.Payload) error {
	var rec order.Record
	if _, ok := p.Data[DataOrderID]; !ok {
		selected, ok := a.history.Selected()
		if !ok {
			return order.ErrNoSelection
		}
		rec = selected
	} else {
		id, err := orderID(p)
		if err != nil {
			return err
		}
		if rec, err = a.history.Get(id); err != nil {
			a.notify(LevelError, template.MsgOrderNotFound, map[string]any{"id": id})
			return err
		}
	}
	return a.printer.Print(order.Receipt(rec, a.messages, a.history.TaxRate()))
}

func (a *App) showOrder(_ context.Context, p *router.Payload) error {
	id, err := orderID(p)
	if err != nil {
		return err
	}
	if _, err := a.history.Select(id); err != nil {
		a.notify(LevelError, template.MsgOrderNotFound, map[string]any{"id": id})
		return err
	}
	a.renderOrderDetails()
	return nil
}

func (a *App) closeOrderDetails(_ context.Context, _ *router.Payload) error {
	a.history.ClearSelection()
	a.renderOrderDetails()
	return nil
}

func (a *App) selectSize(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	return a.engine.SelectSize(i, p.Data[DataSize])
}

func (a *App) toggleExtras(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	return a.engine.ToggleExtras(i)
}

func (a *App) increaseExtra(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	ing, err := a.catalog.Ingredient(p.Data[DataIngredientID])
	if err != nil {
		return err
	}
	return a.engine.IncreaseExtra(i, ing)
}

func (a *App) decreaseExtra(_ context.Context, p *router.Payload) error {
	i, err := itemIndex(p)
	if err != nil {
		return err
	}
	return a.engine.DecreaseExtra(i, p.Data[DataIngredientID])
}

func (a *App) selectCategory(_ context.Context, p *router.Payload) error {
	category := p.Data[DataCategory]
	if category == "" {
		return nil
	}
	return a.store.SetPath(state.PathCurrentCategory, category)
}

func (a *App) searchProducts(_ context.Context, p *router.Payload) error {
	return a.store.SetPath(state.PathSearchQuery, p.Value)
}

func (a *App) searchOrders(ctx context.Context, p *router.Payload) error {
	ctx, span := a.spans.StartSearchSpan(ctx, p.Value)
	results, err := a.history.Search(p.Value)
	if err != nil {
		a.spans.EndSpanWithError(span, err)
		return err
	}
	a.spans.AddSpanEvent(ctx, "results", attribute.Int("orders", len(results)))
	a.spans.EndSpanWithError(span, nil)
	a.view.RenderOrders(results)
	return nil
}

func (a *App) undo(_ context.Context, _ *router.Payload) error {
	a.store.Undo()
	return nil
}

// switchTo returns a handler requesting target. Only an actual switch is
// announced.
func (a *App) switchTo(target string) router.Handler {
	return func(ctx context.Context, _ *router.Payload) error {
		if a.screens.Request(ctx, target) != screen.Switched {
			return nil
		}
		a.notify(LevelInfo, template.MsgScreenSwitched, map[string]any{"screen": screenTitles[target]})
		return nil
	}
}
