package cart

import "github.com/shopspring/decimal"

// LineItem is one product-and-quantity entry in a session cart. At most one
// line exists per ProductID; repeated adds accumulate Quantity instead.
type LineItem struct {
	ProductID string          `json:"seguroId"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precio"`
	ImageURL  string          `json:"imagenUrl"`
	Quantity  int             `json:"cantidad"`
}

// Subtotal is UnitPrice × Quantity, never negative. Rounding to currency
// precision happens at display time only.
func (i LineItem) Subtotal() decimal.Decimal {
	if i.Quantity < 1 || i.UnitPrice.IsNegative() {
		return decimal.Zero
	}
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the subtotals of the given items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
