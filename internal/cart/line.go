package cart

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"ShopFront/internal/catalog"
)

// Line is one product in the cart. Name, Price and Image are copied from
// the product when it is first added and are never refreshed.
type Line struct {
	ProductRef string          `json:"productRef"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image"`
	Quantity   int             `json:"quantity"`
}

// MarshalJSON keeps the persisted price a JSON number, like the catalog's.
func (l Line) MarshalJSON() ([]byte, error) {
	type wire Line
	return json.Marshal(struct {
		wire
		Price json.Number `json:"price"`
	}{wire(l), catalog.PriceNumber(l.Price)})
}

func lineFrom(p catalog.Product, qty int) Line {
	return Line{
		ProductRef: p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Image:      p.Image,
		Quantity:   qty,
	}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Lines []Line

// Total is the sum of line subtotals rounded to cents.
func (ls Lines) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range ls {
		sum = sum.Add(l.Subtotal())
	}
	return sum.Round(2)
}

// ItemCount sums line quantities, saturating at math.MaxInt.
func (ls Lines) ItemCount() int {
	n := 0
	for _, l := range ls {
		if l.Quantity > math.MaxInt-n {
			return math.MaxInt
		}
		n += l.Quantity
	}
	return n
}

func (ls Lines) index(ref string) int {
	for i, l := range ls {
		if l.ProductRef == ref {
			return i
		}
	}
	return -1
}

// Find returns the line for ref, if any.
func (ls Lines) Find(ref string) (Line, bool) {
	if i := ls.index(ref); i >= 0 {
		return ls[i], true
	}
	return Line{}, false
}
