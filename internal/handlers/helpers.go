package handlers

import (
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/pos-checkout/internal/cart"
	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/go-chi/chi/v5"
)

// urlParamInt reads an integer URL parameter
func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// toCartView converts a cart to its display form.
// Money is formatted here and nowhere upstream.
func toCartView(c cart.Cart) models.Cart {
	items := c.Items()
	view := models.Cart{
		Items: make([]models.LineItem, 0, len(items)),
		Total: cart.FormatMoney(cart.Total(c)),
	}
	for i, item := range items {
		view.Items = append(view.Items, models.LineItem{
			Index:     i,
			Barcode:   item.Barcode,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: cart.FormatMoney(item.UnitPrice),
			LineTotal: cart.FormatMoney(item.Subtotal()),
		})
	}
	return view
}

func toSessionView(s *service.CheckoutSession) models.Session {
	return models.Session{
		ID:         s.ID,
		RegisterID: s.RegisterID,
		OpenedAt:   s.OpenedAt,
		Cart:       toCartView(s.Cart()),
	}
}
