package validate

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Get returns the shared validator with the storefront price rules registered.
// decimal.Decimal fields are validated through their string form.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(DecimalValue, decimal.Decimal{})
		_ = validate.RegisterValidation("price", ValidatePrice)
		_ = validate.RegisterValidation("price_nonnegative", ValidateNonNegativePrice)
	})
	return validate
}

func ValidatePrice(fl validator.FieldLevel) bool {
	d, ok := parse(fl)
	return ok && d.IsPositive()
}

func ValidateNonNegativePrice(fl validator.FieldLevel) bool {
	d, ok := parse(fl)
	return ok && !d.IsNegative()
}

func DecimalValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return n.String()
}

func parse(fl validator.FieldLevel) (decimal.Decimal, bool) {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
