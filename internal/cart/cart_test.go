package cart

import (
	"sync"
	"testing"

	"github.com/angelmondragon/wandermart-backend/internal/products"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price string, stock int) products.Product {
	return products.Product{ID: id, Name: "item " + id, Price: decimal.RequireFromString(price), Stock: stock}
}

func TestAddClampsToStock(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("p1", "25.00", 3), 2))
	require.NoError(t, c.Add(product("p1", "25.00", 3), 5))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	require.NoError(t, c.Add(product("p2", "12.50", 10), 0))
	assert.Equal(t, 1, c.Items()[1].Quantity, "quantity never drops below one")
	assert.Equal(t, 4, c.Count())
}

func TestAddRejectsOutOfStock(t *testing.T) {
	err := New().Add(product("p1", "1", 0), 1)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestSetQuantityAndRemove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("p1", "25.00", 5), 1))

	require.NoError(t, c.SetQuantity("p1", 99))
	assert.Equal(t, 5, c.Items()[0].Quantity)
	require.NoError(t, c.SetQuantity("p1", -3))
	assert.Equal(t, 1, c.Items()[0].Quantity)

	err := c.SetQuantity("missing", 1)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	c.Remove("p1")
	assert.Empty(t, c.Items())
}

func TestTotal(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("p1", "25.00", 10), 1))
	require.NoError(t, c.Add(product("p2", "8.75", 10), 2))
	assert.True(t, decimal.RequireFromString("42.50").Equal(c.Total()), c.Total().String())

	c.Clear()
	assert.True(t, c.Total().IsZero())
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Add(product("p1", "1", 30), 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 30, c.Items()[0].Quantity)
}
