package cart

import (
	"fmt"

	"ShopFront/internal/catalog"
)

type ActionKind int

const (
	ActionAddItem ActionKind = iota + 1
	ActionRemoveItem
	ActionSetQuantity
	ActionClear
)

func (k ActionKind) String() string {
	switch k {
	case ActionAddItem:
		return "add_item"
	case ActionRemoveItem:
		return "remove_item"
	case ActionSetQuantity:
		return "set_quantity"
	case ActionClear:
		return "clear"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a cart mutation expressed as data.
// Product is used by ActionAddItem; ProductRef by remove and set-quantity.
type Action struct {
	Kind       ActionKind
	Product    catalog.Product
	ProductRef string
	Quantity   int
}

func AddItem(p catalog.Product, qty int) Action {
	return Action{Kind: ActionAddItem, Product: p, Quantity: qty}
}

func RemoveItem(ref string) Action {
	return Action{Kind: ActionRemoveItem, ProductRef: ref}
}

func SetQuantity(ref string, qty int) Action {
	return Action{Kind: ActionSetQuantity, ProductRef: ref, Quantity: qty}
}

func Clear() Action {
	return Action{Kind: ActionClear}
}

// Apply dispatches a to the matching Manager operation.
func (m *Manager) Apply(a Action) error {
	switch a.Kind {
	case ActionAddItem:
		return m.AddItem(a.Product, a.Quantity)
	case ActionRemoveItem:
		return m.RemoveItem(a.ProductRef)
	case ActionSetQuantity:
		return m.SetQuantity(a.ProductRef, a.Quantity)
	case ActionClear:
		return m.Clear()
	default:
		return fmt.Errorf("unknown cart action %s", a.Kind)
	}
}
