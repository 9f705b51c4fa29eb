package request

type BuyNow struct {
	Quantity int32 `validate:"gte=1" json:"quantity"`
}
