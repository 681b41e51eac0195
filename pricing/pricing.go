// Package pricing derives the checkout totals from a cart's line items.
// The same function backs the storefront order summary and the server-side
// validation of submitted orders, so both always agree to the cent.
package pricing

import "github.com/shopspring/decimal"

const (
	// TaxRate is applied to the items subtotal.
	TaxRate = 0.15
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 100
	// FlatShippingPrice is charged when the subtotal does not clear the threshold.
	FlatShippingPrice = 10
)

// LineItem is a priced quantity of a single product.
type LineItem struct {
	Price float64
	Qty   int
}

// Totals is the derived price breakdown of a cart or order.
type Totals struct {
	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	TotalPrice    float64
}

// Calculate computes the price breakdown for the given line items:
// the items subtotal, a flat shipping charge waived above the free-shipping
// threshold, tax rounded to two decimal places, and their sum.
func Calculate(items []LineItem) Totals {
	itemsPrice := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty)))
		itemsPrice = itemsPrice.Add(line)
	}

	shippingPrice := decimal.NewFromInt(FlatShippingPrice)
	if itemsPrice.GreaterThan(decimal.NewFromInt(FreeShippingThreshold)) {
		shippingPrice = decimal.Zero
	}

	taxPrice := itemsPrice.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	totalPrice := itemsPrice.Add(shippingPrice).Add(taxPrice)

	return Totals{
		ItemsPrice:    itemsPrice.InexactFloat64(),
		ShippingPrice: shippingPrice.InexactFloat64(),
		TaxPrice:      taxPrice.InexactFloat64(),
		TotalPrice:    totalPrice.InexactFloat64(),
	}
}

// Matches reports whether the submitted figures agree with t within one cent
// per component.
func (t Totals) Matches(itemsPrice, shippingPrice, taxPrice, totalPrice float64) bool {
	tolerance := decimal.NewFromFloat(0.01)
	pairs := [][2]float64{
		{t.ItemsPrice, itemsPrice},
		{t.ShippingPrice, shippingPrice},
		{t.TaxPrice, taxPrice},
		{t.TotalPrice, totalPrice},
	}
	for _, p := range pairs {
		diff := decimal.NewFromFloat(p[0]).Sub(decimal.NewFromFloat(p[1])).Abs()
		if diff.GreaterThan(tolerance) {
			return false
		}
	}
	return true
}
