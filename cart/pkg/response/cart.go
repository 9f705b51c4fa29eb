package response

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/request"
)

type Cart struct {
	SessionID     string             `json:"session_id"`
	Items         []request.CartItem `json:"items"`
	TotalQuantity int64              `json:"total_quantity"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
}

func NewCart(sessionID string, items []request.CartItem) Cart {
	if items == nil {
		items = []request.CartItem{}
	}
	cart := Cart{SessionID: sessionID, Items: items, Subtotal: decimal.Zero}
	for _, item := range items {
		cart.TotalQuantity += int64(item.Quantity)
		cart.Subtotal = cart.Subtotal.Add(item.Subtotal())
	}
	return cart
}
