package card

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const defaultQuantity int32 = 1

// Selector is the quantity picker a card opens on buy. It is owned by a single
// card and is not safe for concurrent use.
type Selector struct {
	open     bool
	quantity int32
}

func NewSelector() *Selector {
	return &Selector{quantity: defaultQuantity}
}

func (s *Selector) IsOpen() bool {
	return s.open
}

func (s *Selector) Quantity() int32 {
	return s.quantity
}

func (s *Selector) Open() {
	s.open = true
	s.quantity = defaultQuantity
}

func (s *Selector) Cancel() {
	s.close()
}

func (s *Selector) close() {
	s.open = false
	s.quantity = defaultQuantity
}

func (s *Selector) Increment() error {
	if !s.open {
		return inErrors.ErrSelectorClosed
	}
	if s.quantity == math.MaxInt32 {
		return fmt.Errorf("quantity=%d overflows with error=%w", s.quantity, inErrors.ErrInvalidQuantity)
	}
	s.quantity++
	return nil
}

func (s *Selector) Decrement() error {
	return s.Set(s.quantity - 1)
}

// Set replaces the quantity. Values below one leave the selector untouched.
func (s *Selector) Set(quantity int32) error {
	if !s.open {
		return inErrors.ErrSelectorClosed
	}
	if quantity < 1 {
		return fmt.Errorf("quantity=%d with error=%w", quantity, inErrors.ErrInvalidQuantity)
	}
	s.quantity = quantity
	return nil
}

// SetFromText parses a quantity typed directly by the shopper.
func (s *Selector) SetFromText(text string) error {
	if !s.open {
		return inErrors.ErrSelectorClosed
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return fmt.Errorf("failed parsing quantity=%q with error=%w", text, inErrors.ErrInvalidQuantity)
	}
	return s.Set(int32(quantity))
}
