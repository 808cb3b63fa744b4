package payment

import (
	"context"
	"errors"
)

var ErrNotConnected = errors.New("payment processor not connected")

// Processor is the capability a POS system needs from a payment gateway:
// turn a reference and an amount in cents into a recorded payment. It is
// injected into the system so tests can supply a deterministic fake.
type Processor interface {
	ProcessPayment(ctx context.Context, reference string, amountCents int) error
}
