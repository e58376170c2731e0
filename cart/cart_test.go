package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) Product {
	return Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), Category: "gifts"}
}

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(product("p1", 500))
	c.Add(product("p1", 500))
	c.Add(product("p2", 250))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 3, c.Count())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(1250)))
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.Add(product("p1", 100))

	c.UpdateQuantity("p1", 4)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	c.UpdateQuantity("p1", -2)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	c.UpdateQuantity("missing", 1)
	assert.Len(t, c.Lines, 1)

	c.UpdateQuantity("p1", -3)
	assert.True(t, c.Empty())
}

func TestUpdateQuantityBelowZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(product("p1", 100))
	c.Add(product("p2", 100))

	c.UpdateQuantity("p1", -10)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ID)
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(product("p1", 100))
	c.Add(product("p2", 100))

	c.Remove("p1")
	c.Remove("p1")
	require.Len(t, c.Lines, 1)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Zero(t, c.Count())
	assert.True(t, c.Total().IsZero())
}

func TestDrawerIsIndependentOfLines(t *testing.T) {
	c := New()
	c.OpenDrawer()
	c.Add(product("p1", 100))
	c.Clear()
	assert.True(t, c.DrawerOpen)

	c.ToggleDrawer()
	assert.False(t, c.DrawerOpen)
	c.ToggleDrawer()
	c.CloseDrawer()
	assert.False(t, c.DrawerOpen)
	assert.True(t, c.Empty())
}

func TestCartSurvivesJSON(t *testing.T) {
	c := New()
	c.Add(product("p1", 500))
	c.UpdateQuantity("p1", 1)

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var back Cart
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 2, back.Count())
	assert.True(t, back.Total().Equal(decimal.NewFromInt(1000)))
}
