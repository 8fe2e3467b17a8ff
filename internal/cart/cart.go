// Package cart holds the checkout cart: an ordered list of line items,
// the quantity adjustment rule, and the derived order total.
package cart

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinQuantity is the lowest quantity a line item may hold
const MinQuantity = 1

var (
	ErrInvalidIndex     = errors.New("line item index out of range")
	ErrInvalidLineItem  = errors.New("invalid line item")
	ErrQuantityOverflow = errors.New("quantity overflow")
)

// Result reports whether an adjustment changed the cart
type Result int

const (
	Applied Result = iota
	RejectedBelowMinimum
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case RejectedBelowMinimum:
		return "rejected_below_minimum"
	default:
		return "unknown"
	}
}

// LineItem represents one product entry in the active cart
type LineItem struct {
	Barcode   string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity * unit price
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) validate() error {
	if li.Quantity < MinQuantity {
		return fmt.Errorf("%w: %s quantity %d is below %d", ErrInvalidLineItem, li.Barcode, li.Quantity, MinQuantity)
	}
	if li.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: %s unit price %s is negative", ErrInvalidLineItem, li.Barcode, li.UnitPrice)
	}
	return nil
}

// Cart is an ordered, immutable sequence of line items.
// The zero value is an empty cart.
type Cart struct {
	items []LineItem
}

// New builds a cart in the given order, rejecting any item that breaks
// the quantity or price invariant.
func New(items ...LineItem) (Cart, error) {
	for _, item := range items {
		if err := item.validate(); err != nil {
			return Cart{}, err
		}
	}
	return Cart{items: append([]LineItem(nil), items...)}, nil
}

// Len returns the number of line items
func (c Cart) Len() int {
	return len(c.items)
}

// At returns the line item at index i
func (c Cart) At(i int) (LineItem, bool) {
	if i < 0 || i >= len(c.items) {
		return LineItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the line items in display order
func (c Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

// TotalQuantity returns the number of units across all line items
func (c Cart) TotalQuantity() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Adjust adds delta to the quantity of the line item at index and returns
// the resulting cart. A change that would leave the quantity below
// MinQuantity is rejected and the original cart is returned untouched;
// items are never removed or reordered here.
func Adjust(c Cart, index, delta int) (Cart, Result, error) {
	item, ok := c.At(index)
	if !ok {
		return c, RejectedBelowMinimum, fmt.Errorf("%w: %d (cart has %d items)", ErrInvalidIndex, index, c.Len())
	}

	if delta > 0 && item.Quantity > math.MaxInt-delta {
		return c, RejectedBelowMinimum, fmt.Errorf("%w: %s", ErrQuantityOverflow, item.Barcode)
	}

	newQuantity := item.Quantity + delta
	if newQuantity < MinQuantity {
		return c, RejectedBelowMinimum, nil
	}

	items := c.Items()
	items[index].Quantity = newQuantity
	return Cart{items: items}, Applied, nil
}
