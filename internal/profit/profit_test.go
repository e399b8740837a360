package profit

import (
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testOrder() *entity.Order {
	return &entity.Order{
		ID:       42,
		Currency: "BDT",
		Placed:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestComputeLine(t *testing.T) {
	item := entity.OrderLineItem{
		OrderID:   42,
		ProductID: 7,
		SKU:       "TSHIRT-M",
		Quantity:  2,
		ItemTotal: decimal.NewFromInt(1000),
	}
	costs := &entity.ProductCosts{
		CostPrice:      decimal.NewFromInt(200),
		AdditionalCost: decimal.NewFromInt(50),
		ShippingCost:   decimal.NewFromInt(50),
	}

	row := ComputeLine(testOrder(), item, costs)

	// unit selling 500, combined unit cost 300, profit stored per unit
	assert.True(t, row.SellingPrice.Equal(decimal.NewFromInt(500)), "selling %s", row.SellingPrice)
	assert.True(t, row.CostPrice.Equal(decimal.NewFromInt(200)), "cost %s", row.CostPrice)
	assert.True(t, row.AdditionalCosts.Equal(decimal.NewFromInt(50)))
	assert.True(t, row.ShippingCost.Equal(decimal.NewFromInt(50)))
	assert.True(t, row.ProfitAmount.Equal(decimal.NewFromInt(200)), "profit %s", row.ProfitAmount)
	assert.True(t, row.ProfitMargin.Equal(decimal.NewFromInt(40)), "margin %s", row.ProfitMargin)
	assert.Equal(t, "BDT", row.Currency)
	assert.Equal(t, 42, row.OrderID)
}

func TestComputeLineProfitIdentity(t *testing.T) {
	// unit profit = selling - cost holds for arbitrary inputs.
	item := entity.OrderLineItem{Quantity: 3, ItemTotal: decimal.NewFromFloat(799.50)}
	costs := &entity.ProductCosts{CostPrice: decimal.NewFromFloat(120.10)}

	row := ComputeLine(testOrder(), item, costs)

	want := row.SellingPrice.Sub(row.CostPrice).Round(2)
	assert.True(t, row.ProfitAmount.Equal(want), "got %s want %s", row.ProfitAmount, want)
}

func TestComputeLineZeroSellingPrice(t *testing.T) {
	// A free item loses the cost but the margin stays defined at zero.
	item := entity.OrderLineItem{Quantity: 1, ItemTotal: decimal.Zero}
	costs := &entity.ProductCosts{CostPrice: decimal.NewFromInt(100)}

	row := ComputeLine(testOrder(), item, costs)

	assert.True(t, row.ProfitMargin.IsZero())
	assert.True(t, row.ProfitAmount.Equal(decimal.NewFromInt(-100)))
}

func TestComputeLineZeroQuantity(t *testing.T) {
	// Zero quantity is floored to one so the unit price stays defined.
	item := entity.OrderLineItem{Quantity: 0, ItemTotal: decimal.NewFromInt(500)}

	row := ComputeLine(testOrder(), item, &entity.ProductCosts{})

	assert.Equal(t, 1, row.Quantity)
	assert.True(t, row.SellingPrice.Equal(decimal.NewFromInt(500)))
}

func TestComputeLineOrderProfitTotal(t *testing.T) {
	// two line items: (100-60)*2 + (50-30)*1 = 100, the order total later
	// attached to the conversion record
	items := []entity.OrderLineItem{
		{Quantity: 2, ItemTotal: decimal.NewFromInt(200)},
		{Quantity: 1, ItemTotal: decimal.NewFromInt(50)},
	}
	costs := []*entity.ProductCosts{
		{CostPrice: decimal.NewFromInt(60)},
		{CostPrice: decimal.NewFromInt(30)},
	}

	total := decimal.Zero
	for i, item := range items {
		row := ComputeLine(testOrder(), item, costs[i])
		total = total.Add(row.ProfitAmount.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}

	assert.True(t, total.Equal(decimal.NewFromInt(100)), "total %s", total)
}

func TestComputeLineMissingCostsFullMargin(t *testing.T) {
	item := entity.OrderLineItem{Quantity: 2, ItemTotal: decimal.NewFromInt(1000)}

	row := ComputeLine(testOrder(), item, &entity.ProductCosts{})

	assert.True(t, row.ProfitAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, row.ProfitMargin.Equal(decimal.NewFromInt(100)))
}
