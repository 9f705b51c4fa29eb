package request

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a session cart: a product snapshot taken when the
// shopper confirmed the quantity, priced at the resolved unit price.
type CartItem struct {
	ProductID string          `validate:"required"          json:"product_id"`
	Name      string          `validate:"required"          json:"name"`
	Images    []string        `json:"images"`
	Discount  int32           `validate:"gte=0,lt=100"      json:"discount"`
	Price     decimal.Decimal `validate:"price_nonnegative" json:"price"`
	Quantity  int32           `validate:"gte=1"             json:"quantity"`
}

func (i CartItem) MarshalZerologObject(e *zerolog.Event) {
	e.Str("productId", i.ProductID).
		Str("name", i.Name).
		Str("price", i.Price.String()).
		Int32("discount", i.Discount).
		Int32("quantity", i.Quantity)
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}
