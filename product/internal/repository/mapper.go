package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/product/pkg/response"
)

func (p Product) Response() response.Product {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return response.Product{
		ID:         p.ID,
		Name:       p.Name,
		Images:     images,
		Price:      decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		Discount:   p.Discount,
		NewArrival: p.NewArrival,
		CreatedAt:  p.CreatedAt.Time,
		UpdatedAt:  p.UpdatedAt.Time,
	}
}

func Numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		NaN:              false,
		Valid:            true,
	}
}
