package payment

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// StripeProcessor is a stand-in for the real Stripe gateway: Connect sets a
// flag instead of dialing anything, ProcessPayment logs a receipt. It is safe
// for concurrent use; one instance serves every order in the process.
type StripeProcessor struct {
	mu        sync.Mutex
	connected bool
	url       string
}

func NewStripeProcessor() *StripeProcessor { return &StripeProcessor{} }

// Connect is idempotent; calling it again with the same url is a no-op.
func (p *StripeProcessor) Connect(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected && p.url == url {
		return
	}
	log.Printf("connecting to payment processing service at %s... done", url)
	p.connected = true
	p.url = url
}

func (p *StripeProcessor) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *StripeProcessor) ProcessPayment(ctx context.Context, reference string, amountCents int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return ErrNotConnected
	}
	receipt := uuid.NewString()
	log.Printf("processing payment of %s, reference %s, receipt %s", FormatAmount(amountCents), reference, receipt)
	return nil
}

// FormatAmount renders cents as a two-decimal major-unit string, e.g.
// 21500 -> "215.00". Only this display step leaves minor units.
func FormatAmount(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
