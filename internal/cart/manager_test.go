package cart_test

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopFront/internal/cart"
	"ShopFront/internal/catalog"
)

func product(id, price string) catalog.Product {
	return catalog.Product{
		ID:      id,
		Name:    "Product " + id,
		Price:   decimal.RequireFromString(price),
		Image:   "/img/" + id + ".png",
		InStock: true,
	}
}

func newManager(t *testing.T) (*cart.Manager, *cart.MemStorage) {
	t.Helper()
	st := cart.NewMemStorage()
	return cart.NewManager(st, nil), st
}

func persisted(t *testing.T, st cart.Storage) []map[string]any {
	t.Helper()
	raw, ok, err := st.Get(cart.StorageKey)
	require.NoError(t, err)
	require.True(t, ok, "cart was never persisted")

	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestManager_Scenario(t *testing.T) {
	m, _ := newManager(t)

	require.NoError(t, m.AddItem(product("p1", "9.99"), 2))
	total, err := m.Total()
	require.NoError(t, err)
	assert.Equal(t, "19.98", total.StringFixed(2))

	require.NoError(t, m.AddItem(product("p2", "5.00"), 1))
	total, _ = m.Total()
	count, _ := m.ItemCount()
	assert.Equal(t, "24.98", total.StringFixed(2))
	assert.Equal(t, 3, count)

	require.NoError(t, m.SetQuantity("p1", 1))
	total, _ = m.Total()
	assert.Equal(t, "14.99", total.StringFixed(2))

	require.NoError(t, m.RemoveItem("p2"))
	total, _ = m.Total()
	assert.Equal(t, "9.99", total.StringFixed(2))
}

func TestManager_AddSameProductMerges(t *testing.T) {
	m, _ := newManager(t)

	require.NoError(t, m.AddItem(product("p1", "1.00"), 2))
	require.NoError(t, m.AddItem(product("p1", "1.00"), 3))

	lines, err := m.Load()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestManager_AddRejectsQuantityOverflow(t *testing.T) {
	m, st := newManager(t)

	require.NoError(t, m.AddItem(product("p1", "1.00"), math.MaxInt))
	err := m.AddItem(product("p1", "1.00"), 1)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, cart.ErrStorage)

	lines, err := m.Load()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, math.MaxInt, lines[0].Quantity)
	assert.Len(t, persisted(t, st), 1)
}

func TestManager_ItemCountSaturates(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.AddItem(product("p1", "1.00"), math.MaxInt))
	require.NoError(t, m.AddItem(product("p2", "1.00"), 3))

	n, err := m.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, n)
}

func TestAddQuantity(t *testing.T) {
	n, err := cart.AddQuantity(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = cart.AddQuantity(1, -1)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = cart.AddQuantity(math.MaxInt, 1)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}

func TestManager_SnapshotIsNotRefreshed(t *testing.T) {
	m, _ := newManager(t)

	require.NoError(t, m.AddItem(product("p1", "1.00"), 1))
	changed := product("p1", "2.00")
	changed.Name = "Renamed"
	require.NoError(t, m.AddItem(changed, 1))

	lines, _ := m.Load()
	require.Len(t, lines, 1)
	assert.Equal(t, "Product p1", lines[0].Name)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("1.00")))
}

func TestManager_AddRejectsNonPositiveQuantity(t *testing.T) {
	m, st := newManager(t)

	assert.ErrorIs(t, m.AddItem(product("p1", "1.00"), 0), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, m.AddItem(product("p1", "1.00"), -2), cart.ErrInvalidQuantity)

	_, ok, _ := st.Get(cart.StorageKey)
	assert.False(t, ok)
}

func TestManager_SetQuantityZeroRemoves(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.AddItem(product("p1", "1.00"), 4))
	require.NoError(t, m.AddItem(product("p2", "1.00"), 1))

	before, _ := m.ItemCount()
	require.NoError(t, m.SetQuantity("p1", 0))
	after, _ := m.ItemCount()

	assert.Equal(t, before-4, after)
	lines, _ := m.Load()
	_, found := lines.Find("p1")
	assert.False(t, found)
}

func TestManager_UnknownRefIsNoop(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.AddItem(product("p1", "1.00"), 1))

	require.NoError(t, m.RemoveItem("ghost"))
	require.NoError(t, m.SetQuantity("ghost", 7))

	lines, _ := m.Load()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductRef)
}

func TestManager_ClearThenLoadIsEmpty(t *testing.T) {
	m, st := newManager(t)
	require.NoError(t, m.AddItem(product("p1", "1.00"), 1))

	require.NoError(t, m.Clear())

	lines, err := m.Load()
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Empty(t, persisted(t, st))
}

func TestManager_PersistedShape(t *testing.T) {
	m, st := newManager(t)
	require.NoError(t, m.AddItem(product("p1", "9.99"), 2))

	got := persisted(t, st)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		"productRef": "p1",
		"name":       "Product p1",
		"price":      9.99,
		"image":      "/img/p1.png",
		"quantity":   float64(2),
	}, got[0])
}

func TestManager_CorruptStateLoadsEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":    "{not json",
		"wrong type": `{"productRef":"p1"}`,
		"null":       "null",
	} {
		t.Run(name, func(t *testing.T) {
			st := cart.NewMemStorage()
			require.NoError(t, st.Set(cart.StorageKey, []byte(raw)))
			m := cart.NewManager(st, nil)

			lines, err := m.Load()
			require.NoError(t, err)
			assert.Empty(t, lines)

			require.NoError(t, m.AddItem(product("p1", "1.00"), 1))
			assert.Len(t, persisted(t, st), 1)
		})
	}
}

func TestManager_LoadDropsInvalidLines(t *testing.T) {
	st := cart.NewMemStorage()
	require.NoError(t, st.Set(cart.StorageKey, []byte(`[
		{"productRef":"p1","name":"a","price":1,"image":"","quantity":2},
		{"productRef":"p1","name":"dup","price":1,"image":"","quantity":5},
		{"productRef":"p2","name":"zero","price":1,"image":"","quantity":0},
		{"productRef":"","name":"anon","price":1,"image":"","quantity":1}
	]`)))

	lines, err := cart.NewManager(st, nil).Load()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestManager_WriteFailureIsSurfaced(t *testing.T) {
	st := cart.NewMemStorage()
	st.Quota = 10
	m := cart.NewManager(st, nil)

	err := m.AddItem(product("p1", "1.00"), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrStorage)
	assert.ErrorIs(t, err, cart.ErrQuotaExceeded)
}

type brokenStorage struct{}

func (brokenStorage) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (brokenStorage) Set(string, []byte) error { return errors.New("disk gone") }

func TestManager_ReadFailureIsSurfaced(t *testing.T) {
	m := cart.NewManager(brokenStorage{}, nil)

	_, err := m.Load()
	assert.ErrorIs(t, err, cart.ErrStorage)
	assert.ErrorIs(t, m.AddItem(product("p1", "1.00"), 1), cart.ErrStorage)
	assert.ErrorIs(t, m.Clear(), cart.ErrStorage)
	_, err = m.Total()
	assert.ErrorIs(t, err, cart.ErrStorage)
}

func TestManager_RandomSequencesKeepTotalsConsistent(t *testing.T) {
	catalogue := []catalog.Product{
		product("a", "0.10"),
		product("b", "9.99"),
		product("c", "5.00"),
		product("d", "123.45"),
	}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		m, st := newManager(t)

		for step := 0; step < 40; step++ {
			p := catalogue[rng.Intn(len(catalogue))]
			var a cart.Action
			switch rng.Intn(3) {
			case 0:
				a = cart.AddItem(p, 1+rng.Intn(5))
			case 1:
				a = cart.SetQuantity(p.ID, rng.Intn(6)-1)
			default:
				a = cart.RemoveItem(p.ID)
			}
			require.NoError(t, m.Apply(a))

			var wantCount int
			wantTotal := decimal.Zero
			seen := map[string]bool{}
			for _, l := range persisted(t, st) {
				ref := l["productRef"].(string)
				require.False(t, seen[ref], "duplicate line for %s", ref)
				seen[ref] = true

				qty := int(l["quantity"].(float64))
				require.GreaterOrEqual(t, qty, 1)
				wantCount += qty
				price := decimal.NewFromFloat(l["price"].(float64))
				wantTotal = wantTotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			}

			count, err := m.ItemCount()
			require.NoError(t, err)
			total, err := m.Total()
			require.NoError(t, err)
			assert.Equal(t, wantCount, count)
			assert.True(t, wantTotal.Round(2).Equal(total), "total=%s want=%s", total, wantTotal)
		}
	}
}

func TestManager_ApplyClearAndUnknown(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Apply(cart.AddItem(product("p1", "1.00"), 1)))
	require.NoError(t, m.Apply(cart.Clear()))

	n, _ := m.ItemCount()
	assert.Zero(t, n)

	assert.Error(t, m.Apply(cart.Action{Kind: cart.ActionKind(99)}))
}
