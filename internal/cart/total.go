package cart

import "github.com/shopspring/decimal"

// Total returns the sum of quantity * unit price over every line item.
// An empty cart totals zero.
func Total(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// FormatMoney renders an amount with exactly two decimal places for display
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
