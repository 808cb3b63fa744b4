package pos

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Order aggregates one customer and an ordered sequence of line items. ID is
// empty until the order is registered with a System.
type Order struct {
	ID       string
	Customer Customer

	items  []LineItem
	status Status
}

func NewOrder(c Customer) *Order {
	return &Order{Customer: c, status: StatusOpen}
}

func (o *Order) AddLineItem(li LineItem) {
	o.items = append(o.items, li)
}

func (o *Order) LineItems() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// TotalCents is recomputed on every call; an empty order totals 0.
func (o *Order) TotalCents() int {
	total := 0
	for _, li := range o.items {
		total += li.TotalCents()
	}
	return total
}

func (o *Order) Status() Status { return o.status }

// SetStatus rejects transitions outside the table in status.go and leaves the
// current status untouched on rejection.
func (o *Order) SetStatus(next Status) error {
	if !CanTransition(o.status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, next)
	}
	o.status = next
	return nil
}
