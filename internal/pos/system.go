package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/retailcore/go-pos/internal/payment"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAlreadyRegistered = errors.New("order already registered")
)

const (
	defaultPaymentTimeout = 5 * time.Second

	// After this many collisions at one length, widen the id by a character.
	idRetries = 10
)

// Notifier receives the ready-to-ship signal after a successful payment.
// Shipping itself happens elsewhere; the system only emits the signal.
type Notifier interface {
	ReadyToShip(ctx context.Context, o *Order)
}

// System registers orders, stores them in memory, and drives the
// pay-then-ship sequence through an injected payment processor. A single
// mutex keeps register/find/process atomic with respect to each other.
type System struct {
	mu        sync.Mutex
	processor payment.Processor
	notifier  Notifier
	orders    map[string]*Order
	timeout   time.Duration
}

type Option func(*System)

func WithNotifier(n Notifier) Option {
	return func(s *System) { s.notifier = n }
}

func WithPaymentTimeout(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewSystem(p payment.Processor, opts ...Option) *System {
	s := &System{
		processor: p,
		orders:    make(map[string]*Order),
		timeout:   defaultPaymentTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterOrder assigns a fresh id and stores the order. Ids are regenerated
// on collision with currently-registered orders.
func (s *System) RegisterOrder(o *Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID != "" {
		return "", fmt.Errorf("%w: %s", ErrAlreadyRegistered, o.ID)
	}

	length := DefaultIDLength
	id := newOrderID(length)
	for i := 0; ; i++ {
		if _, taken := s.orders[id]; !taken {
			break
		}
		if i >= idRetries {
			length++
		}
		id = newOrderID(length)
	}

	o.ID = id
	s.orders[id] = o
	return id, nil
}

func (s *System) FindOrder(orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return o, nil
}

// ProcessOrder charges the order's total against the processor and, only
// after the payment succeeds, moves the order to PAID and signals the
// notifier. On any payment failure the status is left untouched so the
// caller can reconnect and retry.
func (s *System) ProcessOrder(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if registered, ok := s.orders[o.ID]; !ok || registered != o {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, o.ID)
	}

	// Refuse before charging: a paid (or canceled) order must never reach
	// the processor again.
	if !CanTransition(o.Status(), StatusPaid) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status(), StatusPaid)
	}

	total := o.TotalCents()

	payCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.processor.ProcessPayment(payCtx, o.ID, total)
	cancel()
	if err != nil {
		return fmt.Errorf("process order %s: %w", o.ID, err)
	}

	if err := o.SetStatus(StatusPaid); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.ReadyToShip(ctx, o)
	}
	return nil
}
