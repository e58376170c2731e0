package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("shipped")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, st)

	_, ok = ParseOrderStatus("cancelled")
	assert.False(t, ok)
}

func TestOrderItemsTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{UnitPrice: decimal.NewFromInt(500), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("99.50"), Quantity: 1},
	}}
	assert.True(t, o.ItemsTotal().Equal(decimal.RequireFromString("1099.50")))
}

func TestAddressSameLocationIgnoresNameAndPhone(t *testing.T) {
	a := Address{FirstName: "Asha", Phone: "9876543210", Street: "1 MG Road", City: "Mumbai", State: "MH", Zip: "400001"}
	b := a
	b.FirstName = "Ravi"
	b.Phone = "9123456780"
	assert.True(t, a.SameLocation(b))

	b.Zip = "400002"
	assert.False(t, a.SameLocation(b))
}

func TestSavedAddressRoundTrip(t *testing.T) {
	a := Address{FirstName: "Asha", LastName: "K", Phone: "9876543210", Street: "1 MG Road", City: "Mumbai", State: "MH", Zip: "400001"}
	assert.Equal(t, a, NewSavedAddress("u1", a).Address())
	assert.Equal(t, "Asha K", a.FullName())
}
