package models

import "time"

// LineItem is the display form of one cart row.
// Money fields are formatted to two decimal places.
type LineItem struct {
	Index     int    `json:"index"`
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// Cart is the display form of a checkout cart
type Cart struct {
	Items []LineItem `json:"items"`
	Total string     `json:"total"`
}

// Session describes an open checkout session on a register
type Session struct {
	ID         string    `json:"id"`
	RegisterID int       `json:"registerId"`
	OpenedAt   time.Time `json:"openedAt"`
	Cart       Cart      `json:"cart"`
}

// AdjustRequest is the body of a quantity adjustment
type AdjustRequest struct {
	Delta int `json:"delta"`
}

// AdjustResponse reports the outcome of a quantity adjustment.
// A rejected decrement is not an error: Applied is false and the cart is unchanged.
type AdjustResponse struct {
	Result  string `json:"result"`
	Applied bool   `json:"applied"`
	Cart    Cart   `json:"cart"`
}

// Summary is the order summary panel
type Summary struct {
	ItemCount     int    `json:"itemCount"`
	TotalQuantity int    `json:"totalQuantity"`
	Total         string `json:"total"`
}
