package storefront

import (
	"strconv"

	"github.com/shopspring/decimal"

	"ShopFront/internal/cart"
	"ShopFront/internal/catalog"
)

const summaryLen = 60

type ProductCard struct {
	ID      string
	Name    string
	Image   string
	Summary string
	Price   decimal.Decimal
}

func cardFrom(p catalog.Product) ProductCard {
	return ProductCard{
		ID:      p.ID,
		Name:    p.Name,
		Image:   p.Image,
		Summary: Summarize(p.Description),
		Price:   p.Price,
	}
}

// Summarize keeps the first 60 characters of a description and always
// appends an ellipsis, as the listing has always shown it.
func Summarize(desc string) string {
	r := []rune(desc)
	if len(r) > summaryLen {
		r = r[:summaryLen]
	}
	return string(r) + "..."
}

// DetailView is the open product plus its quantity stepper.
type DetailView struct {
	Product  catalog.Product
	Quantity int
}

func (d DetailView) CanAdd() bool { return d.Product.InStock }

type CartView struct {
	Lines cart.Lines
	Total decimal.Decimal
	Count int
}

func BadgeLabel(count int) string {
	if count > 0 {
		return "Cart (" + strconv.Itoa(count) + ")"
	}
	return "Cart"
}

// Renderer draws storefront state. Exactly one implementation is linked into
// a binary; App never inspects what it draws to.
type Renderer interface {
	Loading(what string)
	Products(cards []ProductCard)
	Detail(v DetailView)
	Cart(v CartView)
	Badge(label string)
	Notice(msg string)
	Error(msg string)
	NotFound(id string)
	Prompt()
}
