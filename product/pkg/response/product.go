package response

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as shown on a storefront card. Images are ordered
// and the first one is the primary image. Discount is a whole percentage in
// [0,100); zero means the product is sold at its base price.
type Product struct {
	ID         string          `json:"id"          validate:"required"`
	Name       string          `json:"name"        validate:"required"`
	Images     []string        `json:"images"`
	Price      decimal.Decimal `json:"price"       validate:"price"`
	Discount   int32           `json:"discount"    validate:"gte=0,lt=100"`
	NewArrival bool            `json:"new_arrival"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

func (p Product) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", p.ID).
		Str("name", p.Name).
		Str("price", p.Price.String()).
		Int32("discount", p.Discount).
		Bool("newArrival", p.NewArrival).
		Int("images", len(p.Images))
}
