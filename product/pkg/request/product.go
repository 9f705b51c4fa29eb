package request

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/product/pkg/response"
)

type InsertProduct struct {
	ID         string          `validate:"required"      json:"id"`
	Name       string          `validate:"required"      json:"name"`
	Images     []string        `validate:"dive,required" json:"images"`
	Price      decimal.Decimal `validate:"price"         json:"price"`
	Discount   int32           `validate:"gte=0,lt=100"  json:"discount"`
	NewArrival bool            `json:"new_arrival"`
}

func (p InsertProduct) Product() response.Product {
	return response.Product{
		ID:         p.ID,
		Name:       p.Name,
		Images:     p.Images,
		Price:      p.Price,
		Discount:   p.Discount,
		NewArrival: p.NewArrival,
	}
}
