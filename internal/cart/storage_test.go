package cart_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"ShopFront/internal/cart"
)

func TestFileStorage_SurvivesNewManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shop")

	first := cart.NewManager(cart.NewFileStorage(dir), nil)
	require.NoError(t, first.AddItem(product("p1", "9.99"), 2))

	second := cart.NewManager(cart.NewFileStorage(dir), nil)
	lines, err := second.Load()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	_, err = os.Stat(filepath.Join(dir, cart.StorageKey+".json"))
	assert.NoError(t, err)
}

func TestFileStorage_MissingIsEmpty(t *testing.T) {
	st := cart.NewFileStorage(t.TempDir())

	b, ok, err := st.Get(cart.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestFileStorage_UnwritableDirIsStorageError(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	m := cart.NewManager(cart.NewFileStorage(filepath.Join(blocker, "sub")), nil)
	err := m.AddItem(product("p1", "1.00"), 1)
	assert.ErrorIs(t, err, cart.ErrStorage)
}

// Concurrent writers each replace the whole file; the result is always one
// complete writer's state, never a torn mix.
func TestFileStorage_ConcurrentWritersLastWins(t *testing.T) {
	dir := t.TempDir()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			st := cart.NewFileStorage(dir)
			for j := 0; j < 20; j++ {
				payload, err := json.Marshal([]cart.Line{{ProductRef: fmt.Sprintf("w%d", i), Quantity: j + 1}})
				if err != nil {
					return err
				}
				if err := st.Set(cart.StorageKey, payload); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	lines, err := cart.NewManager(cart.NewFileStorage(dir), nil).Load()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 20, lines[0].Quantity)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestMemStorage_QuotaAccountsOtherKeys(t *testing.T) {
	st := cart.NewMemStorage()
	st.Quota = 8

	require.NoError(t, st.Set("a", []byte("12345")))
	assert.ErrorIs(t, st.Set("b", []byte("6789")), cart.ErrQuotaExceeded)
	require.NoError(t, st.Set("a", []byte("12345678")))
}
