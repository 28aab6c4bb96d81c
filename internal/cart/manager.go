package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/internal/catalog"
)

// StorageKey is the fixed key the cart is persisted under.
const StorageKey = "cart"

var ErrInvalidQuantity = errors.New("invalid quantity")

// Manager owns the cart lines and their persistence. It keeps no copy in
// memory: every call reads the stored state and every mutation writes it
// back before returning.
type Manager struct {
	storage Storage
	log     *zap.Logger
}

func NewManager(storage Storage, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{storage: storage, log: log}
}

// Load returns the persisted lines. Missing or unreadable JSON yields an
// empty cart; only a storage read failure is an error.
func (m *Manager) Load() (Lines, error) {
	raw, ok, err := m.storage.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, StorageKey, err)
	}
	if !ok {
		return Lines{}, nil
	}

	var lines Lines
	if err := json.Unmarshal(raw, &lines); err != nil {
		m.log.Warn("discarding corrupt cart data", zap.Error(err), zap.Int("bytes", len(raw)))
		return Lines{}, nil
	}
	return sanitize(lines), nil
}

// sanitize drops lines that could not have been written by this package so
// a hand-edited file cannot break the one-line-per-product invariant.
func sanitize(lines Lines) Lines {
	out := make(Lines, 0, len(lines))
	for _, l := range lines {
		if l.ProductRef == "" || l.Quantity < 1 || out.index(l.ProductRef) >= 0 {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (m *Manager) save(lines Lines) error {
	if lines == nil {
		lines = Lines{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorage, err)
	}
	if err := m.storage.Set(StorageKey, raw); err != nil {
		m.log.Error("cart write failed", zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", ErrStorage, StorageKey, err)
	}
	return nil
}

// update loads, applies fn and saves. When fn fails nothing is written.
func (m *Manager) update(fn func(Lines) (Lines, error)) error {
	lines, err := m.Load()
	if err != nil {
		return err
	}
	lines, err = fn(lines)
	if err != nil {
		return err
	}
	return m.save(lines)
}

// AddQuantity returns have+more, or ErrInvalidQuantity when the sum would
// not fit in an int.
func AddQuantity(have, more int) (int, error) {
	if more > 0 && have > math.MaxInt-more {
		return 0, fmt.Errorf("%w: %d + %d is too large", ErrInvalidQuantity, have, more)
	}
	return have + more, nil
}

// AddItem adds qty of p, merging into an existing line for the same product.
func (m *Manager) AddItem(p catalog.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: %d is below 1", ErrInvalidQuantity, qty)
	}
	return m.update(func(lines Lines) (Lines, error) {
		i := lines.index(p.ID)
		if i < 0 {
			return append(lines, lineFrom(p, qty)), nil
		}
		n, err := AddQuantity(lines[i].Quantity, qty)
		if err != nil {
			return nil, err
		}
		lines[i].Quantity = n
		return lines, nil
	})
}

// SetQuantity replaces a line's quantity. Anything below 1 removes the line.
// Unknown refs are ignored.
func (m *Manager) SetQuantity(ref string, qty int) error {
	if qty < 1 {
		return m.RemoveItem(ref)
	}
	return m.update(func(lines Lines) (Lines, error) {
		if i := lines.index(ref); i >= 0 {
			lines[i].Quantity = qty
		}
		return lines, nil
	})
}

func (m *Manager) RemoveItem(ref string) error {
	return m.update(func(lines Lines) (Lines, error) {
		if i := lines.index(ref); i >= 0 {
			return append(lines[:i], lines[i+1:]...), nil
		}
		return lines, nil
	})
}

func (m *Manager) Clear() error {
	return m.save(Lines{})
}

func (m *Manager) Total() (decimal.Decimal, error) {
	lines, err := m.Load()
	if err != nil {
		return decimal.Zero, err
	}
	return lines.Total(), nil
}

func (m *Manager) ItemCount() (int, error) {
	lines, err := m.Load()
	if err != nil {
		return 0, err
	}
	return lines.ItemCount(), nil
}
