package card

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/storefront/shop/internal/otel"
)

var itemsAdded = mustInt64Counter(
	"storefront.cart.items_added",
	metric.WithDescription("Quantity added to session carts from product cards"),
	metric.WithUnit("{item}"),
)

func mustInt64Counter(name string, opts ...metric.Int64CounterOption) metric.Int64Counter {
	counter, err := otel.Meter.Int64Counter(name, opts...)
	if err != nil {
		panic(err)
	}
	return counter
}
