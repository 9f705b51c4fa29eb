package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Price decimal.Decimal `validate:"price"`
}

type pricedText struct {
	Price string `validate:"required,price"`
}

type discounted struct {
	Price decimal.Decimal `validate:"price_nonnegative"`
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		expectErr bool
	}{
		{name: "given positive decimal should pass", input: priced{Price: decimal.NewFromInt(1000)}},
		{name: "given zero decimal should fail", input: priced{Price: decimal.Zero}, expectErr: true},
		{name: "given negative decimal should fail", input: priced{Price: decimal.NewFromInt(-1)}, expectErr: true},
		{name: "given positive text should pass", input: pricedText{Price: "1299000.50"}},
		{name: "given malformed text should fail", input: pricedText{Price: "abc"}, expectErr: true},
		{name: "given zero nonnegative should pass", input: discounted{Price: decimal.Zero}},
		{name: "given negative nonnegative should fail", input: discounted{Price: decimal.NewFromInt(-5)}, expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Get().Struct(test.input)
			if test.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
