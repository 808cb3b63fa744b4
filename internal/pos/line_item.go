package pos

import (
	"errors"
	"fmt"
)

var ErrInvalidLineItem = errors.New("invalid line item")

// LineItem is a single item/quantity/price entry. Prices are integer minor
// currency units (cents); display formatting happens at the payment boundary.
type LineItem struct {
	Item           string `json:"item"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

func NewLineItem(item string, qty, unitPriceCents int) (LineItem, error) {
	if item == "" {
		return LineItem{}, fmt.Errorf("%w: empty item name", ErrInvalidLineItem)
	}
	if qty <= 0 {
		return LineItem{}, fmt.Errorf("%w: qty %d for %q", ErrInvalidLineItem, qty, item)
	}
	if unitPriceCents < 0 {
		return LineItem{}, fmt.Errorf("%w: negative price for %q", ErrInvalidLineItem, item)
	}
	return LineItem{Item: item, Qty: qty, UnitPriceCents: unitPriceCents}, nil
}

func (li LineItem) TotalCents() int { return li.Qty * li.UnitPriceCents }
