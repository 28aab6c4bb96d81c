package storefront

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ShopFront/internal/cart"
	"ShopFront/internal/catalog"
)

const (
	msgAdded       = "Product added to cart!"
	msgEmptyCart   = "Your cart is empty!"
	msgThankYou    = "Thank you for your purchase! This is a demo, so no actual payment was processed."
	msgNoOpenEntry = "no product is open; use 'show <id>' first"
)

// App turns storefront events into catalog reads, cart actions and renders.
// The cart manager is injected and is the only cart state; App re-reads it
// on every view.
type App struct {
	catalog Catalog
	cart    *cart.Manager
	view    Renderer
	log     *zap.Logger

	detail *DetailView
}

func NewApp(c Catalog, m *cart.Manager, r Renderer, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{catalog: c, cart: m, view: r, log: log}
}

// Start draws the initial badge from persisted state.
func (a *App) Start() error {
	return a.renderBadge()
}

// Handle applies one event. Catalog failures are rendered and do not return
// an error; cart storage failures are rendered and returned.
func (a *App) Handle(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case ShowProducts:
		return a.showProducts(ctx)
	case ShowProduct:
		return a.showProduct(ctx, ev.ID)
	case StepUp:
		return a.step(1)
	case StepDown:
		return a.step(-1)
	case AddToCart:
		return a.addToCart(ctx, ev.ID, ev.Quantity)
	case ShowCart:
		return a.renderCart()
	case IncrementLine:
		return a.adjustLine(ev.ID, 1)
	case DecrementLine:
		return a.adjustLine(ev.ID, -1)
	case RemoveLine:
		return a.mutate(cart.RemoveItem(ev.ID))
	case Checkout:
		return a.checkout()
	default:
		return fmt.Errorf("unknown event %s", ev.Kind)
	}
}

func (a *App) showProducts(ctx context.Context) error {
	a.view.Loading("products")

	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		a.catalogFailure("load products", "", err)
		return nil
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, cardFrom(p))
	}
	a.view.Products(cards)
	return nil
}

func (a *App) showProduct(ctx context.Context, id string) error {
	a.detail = nil

	p, ok := a.fetchProduct(ctx, id)
	if !ok {
		return nil
	}

	a.detail = &DetailView{Product: p, Quantity: 1}
	a.view.Detail(*a.detail)
	return nil
}

func (a *App) fetchProduct(ctx context.Context, id string) (catalog.Product, bool) {
	a.view.Loading("product " + id)

	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		a.catalogFailure("load product", id, err)
		return catalog.Product{}, false
	}
	return p, true
}

// step moves the detail stepper; it never goes below 1 and has no ceiling.
func (a *App) step(delta int) error {
	if a.detail == nil {
		a.view.Error(msgNoOpenEntry)
		return nil
	}

	if q := a.detail.Quantity + delta; q >= 1 {
		a.detail.Quantity = q
	}
	a.view.Detail(*a.detail)
	return nil
}

// addToCart adds from the open detail view, or, when id is given, fetches
// that product first.
func (a *App) addToCart(ctx context.Context, id string, qty int) error {
	var p catalog.Product
	fromDetail := id == ""

	if fromDetail {
		if a.detail == nil {
			a.view.Error(msgNoOpenEntry)
			return nil
		}
		p, qty = a.detail.Product, a.detail.Quantity
	} else {
		var ok bool
		if p, ok = a.fetchProduct(ctx, id); !ok {
			return nil
		}
		if qty == 0 {
			qty = 1
		}
	}

	if !p.InStock {
		a.view.Error(p.Name + " is out of stock")
		return nil
	}

	if err := a.cart.Apply(cart.AddItem(p, qty)); err != nil {
		return a.cartFailure(err)
	}
	if fromDetail {
		a.detail = nil
	}

	a.view.Notice(msgAdded)
	return a.renderBadge()
}

func (a *App) adjustLine(ref string, delta int) error {
	lines, err := a.cart.Load()
	if err != nil {
		return a.cartFailure(err)
	}

	line, ok := lines.Find(ref)
	if !ok {
		a.view.Error(ref + " is not in your cart")
		return nil
	}
	n, err := cart.AddQuantity(line.Quantity, delta)
	if err != nil {
		return a.cartFailure(err)
	}
	return a.mutate(cart.SetQuantity(ref, n))
}

func (a *App) checkout() error {
	lines, err := a.cart.Load()
	if err != nil {
		return a.cartFailure(err)
	}
	if len(lines) == 0 {
		a.view.Error(msgEmptyCart)
		return nil
	}

	if err := a.cart.Apply(cart.Clear()); err != nil {
		return a.cartFailure(err)
	}
	a.view.Notice(msgThankYou)
	if err := a.renderCart(); err != nil {
		return err
	}
	return a.renderBadge()
}

func (a *App) mutate(act cart.Action) error {
	if err := a.cart.Apply(act); err != nil {
		return a.cartFailure(err)
	}
	if err := a.renderCart(); err != nil {
		return err
	}
	return a.renderBadge()
}

func (a *App) renderCart() error {
	lines, err := a.cart.Load()
	if err != nil {
		return a.cartFailure(err)
	}
	a.view.Cart(CartView{Lines: lines, Total: lines.Total(), Count: lines.ItemCount()})
	return nil
}

func (a *App) renderBadge() error {
	n, err := a.cart.ItemCount()
	if err != nil {
		return a.cartFailure(err)
	}
	a.view.Badge(BadgeLabel(n))
	return nil
}

func (a *App) catalogFailure(action, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		a.view.NotFound(id)
	default:
		a.log.Warn("catalog request failed", zap.String("action", action), zap.String("id", id), zap.Error(err))
		a.view.Error(fmt.Sprintf("could not %s: %v", action, err))
	}
}

func (a *App) cartFailure(err error) error {
	if errors.Is(err, cart.ErrInvalidQuantity) {
		a.view.Error(err.Error())
		return err
	}
	a.log.Error("cart update failed", zap.Error(err))
	a.view.Error("could not save your cart: " + err.Error())
	return err
}
