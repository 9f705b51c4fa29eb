// Package price derives the amounts a storefront card shows for a product: the
// effective unit price after discount and, for discounted products, the
// original price it is compared against.
package price

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/product/pkg/response"
)

// Current is the base price reduced by the discount percentage and rounded
// down to places fractional digits. Rounding down keeps a discounted price
// strictly below its original price.
func Current(p response.Product, places int32) decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}
	remaining := decimal.NewFromInt32(100 - p.Discount)
	return p.Price.Mul(remaining).Shift(-2).RoundDown(places)
}

// Original returns the pre-discount price. ok is false when the product has no
// discount, in which case there is no original price to show.
func Original(p response.Product) (original decimal.Decimal, ok bool) {
	if !p.HasDiscount() {
		return decimal.Decimal{}, false
	}
	return p.Price, true
}

// Formatter renders amounts in a locale without going through float64, so
// every digit of the decimal survives. Separators, digits and grouping sizes
// are read once from the locale when the formatter is built.
type Formatter struct {
	digits    [10]string
	group     string
	decimal   string
	primary   int
	secondary int
	symbol    string
	places    int32
}

func NewFormatter(locale string, symbol string, places int32) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("failed parsing locale=%s with error=%w", locale, err)
	}
	printer := message.NewPrinter(tag)

	f := Formatter{symbol: symbol, places: places}
	for i := range f.digits {
		f.digits[i] = printer.Sprint(number.Decimal(i))
	}

	sample := printer.Sprint(number.Decimal(1234567.5, number.Scale(1)))
	for i, digit := range f.digits {
		sample = strings.ReplaceAll(sample, digit, strconv.Itoa(i))
	}
	if err := f.readSeparators(sample); err != nil {
		return Formatter{}, fmt.Errorf("failed reading separators of locale=%s with error=%w", locale, err)
	}
	return f, nil
}

// readSeparators splits a sample like "1,234,567.5" into digit runs and the
// separators between them.
func (f *Formatter) readSeparators(sample string) error {
	runs, separators := []string{}, []string{}
	var current strings.Builder
	inDigits := false
	for _, r := range sample {
		isDigit := r >= '0' && r <= '9'
		if current.Len() > 0 && isDigit != inDigits {
			if inDigits {
				runs = append(runs, current.String())
			} else {
				separators = append(separators, current.String())
			}
			current.Reset()
		}
		inDigits = isDigit
		current.WriteRune(r)
	}
	if inDigits {
		runs = append(runs, current.String())
	}
	if len(runs) < 2 || len(separators) != len(runs)-1 {
		return fmt.Errorf("unexpected number sample=%q", sample)
	}

	f.decimal = separators[len(separators)-1]
	groups := runs[:len(runs)-1]
	if len(groups) < 2 {
		return nil
	}
	f.group = separators[0]
	f.primary = len(groups[len(groups)-1])
	f.secondary = f.primary
	if len(groups) > 2 {
		f.secondary = len(groups[len(groups)-2])
	}
	return nil
}

func (f Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(f.places)
	negative := strings.HasPrefix(fixed, "-")
	integer, fraction, _ := strings.Cut(strings.TrimPrefix(fixed, "-"), ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	f.writeDigits(&b, f.groupDigits(integer))
	if fraction != "" {
		b.WriteString(f.decimal)
		f.writeDigits(&b, fraction)
	}
	if f.symbol != "" {
		b.WriteString(" ")
		b.WriteString(f.symbol)
	}
	return b.String()
}

func (f Formatter) groupDigits(integer string) string {
	if f.primary == 0 || len(integer) <= f.primary {
		return integer
	}
	head := integer[:len(integer)-f.primary]
	groups := []string{integer[len(integer)-f.primary:]}
	for len(head) > f.secondary {
		groups = append([]string{head[len(head)-f.secondary:]}, groups...)
		head = head[:len(head)-f.secondary]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, f.group)
}

func (f Formatter) writeDigits(b *strings.Builder, s string) {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteString(f.digits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
}

type Display struct {
	Current        string          `json:"current"`
	Original       string          `json:"original,omitempty"`
	DiscountBadge  string          `json:"discount_badge,omitempty"`
	CurrentAmount  decimal.Decimal `json:"current_amount"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	HasDiscount    bool            `json:"has_discount"`
	NewArrival     bool            `json:"new_arrival"`
}

type Resolver struct {
	formatter Formatter
	places    int32
}

func NewResolver(formatter Formatter) Resolver {
	return Resolver{formatter: formatter, places: formatter.places}
}

func NewResolverFromConfig(cfg config.Storefront) (Resolver, error) {
	formatter, err := NewFormatter(cfg.Locale, cfg.CurrencySymbol, cfg.Places)
	if err != nil {
		return Resolver{}, err
	}
	return NewResolver(formatter), nil
}

func (r Resolver) Current(p response.Product) decimal.Decimal {
	return Current(p, r.places)
}

func (r Resolver) Resolve(p response.Product) Display {
	current := r.Current(p)
	display := Display{
		Current:       r.formatter.Format(current),
		CurrentAmount: current,
		NewArrival:    p.NewArrival,
	}
	if original, ok := Original(p); ok {
		display.HasDiscount = true
		display.Original = r.formatter.Format(original)
		display.OriginalAmount = original
		display.DiscountBadge = fmt.Sprintf("-%d%%", p.Discount)
	}
	return display
}
