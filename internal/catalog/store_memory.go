package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{m: make(map[string]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

// NewDemoStore returns a MemStore holding a small sample catalog.
func NewDemoStore() *MemStore {
	return NewMemStore(DemoProducts()...)
}

func DemoProducts() []Product {
	return []Product{
		{
			ID:          "p1",
			Name:        "Mechanical Keyboard",
			Price:       decimal.RequireFromString("49.90"),
			Description: "Tenkeyless mechanical keyboard with hot-swappable switches and PBT keycaps.",
			Image:       "/images/keyboard.jpg",
			Category:    "Peripherals",
			InStock:     true,
		},
		{
			ID:          "p2",
			Name:        "Wireless Mouse",
			Price:       decimal.RequireFromString("19.90"),
			Description: "Lightweight wireless mouse with a 2.4 GHz receiver.",
			Image:       "/images/mouse.jpg",
			Category:    "Peripherals",
			InStock:     true,
		},
		{
			ID:          "p3",
			Name:        "27\" Monitor",
			Price:       decimal.RequireFromString("229.00"),
			Description: "27 inch IPS panel, 2560x1440, 144 Hz, height adjustable stand included.",
			Image:       "/images/monitor.jpg",
			Category:    "Displays",
			InStock:     false,
		},
		{
			ID:          "p4",
			Name:        "USB-C Hub",
			Price:       decimal.RequireFromString("9.99"),
			Description: "Seven ports: HDMI, 3x USB-A, SD, microSD and USB-C power delivery.",
			Image:       "/images/hub.jpg",
			Category:    "Accessories",
			InStock:     true,
		},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}
