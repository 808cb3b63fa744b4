package pos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/go-pos/internal/payment"
)

type fakeProcessor struct {
	err     error
	refs    []string
	amounts []int
}

func (f *fakeProcessor) ProcessPayment(_ context.Context, reference string, amountCents int) error {
	if f.err != nil {
		return f.err
	}
	f.refs = append(f.refs, reference)
	f.amounts = append(f.amounts, amountCents)
	return nil
}

type fakeNotifier struct {
	shipped []string
}

func (f *fakeNotifier) ReadyToShip(_ context.Context, o *Order) {
	f.shipped = append(f.shipped, o.ID)
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o := NewOrder(Customer{
		ID: 12345, Name: "Craig", Address: "100 Any St.",
		PostalCode: "00001", City: "Anywhere", Email: "junk@email.com",
	})
	o.AddLineItem(mustLineItem(t, "Keyboard", 1, 5000))
	o.AddLineItem(mustLineItem(t, "SSD", 1, 15000))
	o.AddLineItem(mustLineItem(t, "USB 3 Cable", 3, 500))
	return o
}

func TestRegisterOrderAssignsID(t *testing.T) {
	s := NewSystem(&fakeProcessor{})
	o := newTestOrder(t)

	id, err := s.RegisterOrder(o)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, o.ID)
	assert.Len(t, id, DefaultIDLength)
	for _, c := range id {
		assert.True(t, c >= 'A' && c <= 'Z', "id char %q outside A-Z", c)
	}

	found, err := s.FindOrder(id)
	require.NoError(t, err)
	assert.Same(t, o, found)
}

func TestRegisterOrderTwiceFails(t *testing.T) {
	s := NewSystem(&fakeProcessor{})
	o := newTestOrder(t)

	_, err := s.RegisterOrder(o)
	require.NoError(t, err)
	_, err = s.RegisterOrder(o)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestFindOrderUnknownID(t *testing.T) {
	s := NewSystem(&fakeProcessor{})
	_, err := s.FindOrder("ABCDEF")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestProcessOrderPaysTotalAndShips(t *testing.T) {
	proc := &fakeProcessor{}
	notif := &fakeNotifier{}
	s := NewSystem(proc, WithNotifier(notif))
	o := newTestOrder(t)
	id, err := s.RegisterOrder(o)
	require.NoError(t, err)

	require.NoError(t, s.ProcessOrder(context.Background(), o))

	assert.Equal(t, StatusPaid, o.Status())
	require.Len(t, proc.refs, 1)
	assert.Equal(t, id, proc.refs[0])
	assert.Equal(t, 21500, proc.amounts[0])
	assert.Equal(t, []string{id}, notif.shipped)
}

func TestProcessOrderPaymentFailureLeavesOrderOpen(t *testing.T) {
	proc := &fakeProcessor{err: payment.ErrNotConnected}
	notif := &fakeNotifier{}
	s := NewSystem(proc, WithNotifier(notif))
	o := newTestOrder(t)
	_, err := s.RegisterOrder(o)
	require.NoError(t, err)

	err = s.ProcessOrder(context.Background(), o)
	assert.ErrorIs(t, err, payment.ErrNotConnected)
	assert.Equal(t, StatusOpen, o.Status())
	assert.Empty(t, notif.shipped)
}

func TestProcessOrderRetryAfterReconnect(t *testing.T) {
	proc := &fakeProcessor{err: payment.ErrNotConnected}
	s := NewSystem(proc)
	o := newTestOrder(t)
	_, err := s.RegisterOrder(o)
	require.NoError(t, err)

	require.Error(t, s.ProcessOrder(context.Background(), o))
	assert.Equal(t, StatusOpen, o.Status())

	proc.err = nil // reconnected
	require.NoError(t, s.ProcessOrder(context.Background(), o))
	assert.Equal(t, StatusPaid, o.Status())
}

func TestProcessOrderPaidOrderNotChargedAgain(t *testing.T) {
	proc := &fakeProcessor{}
	s := NewSystem(proc)
	o := newTestOrder(t)
	_, err := s.RegisterOrder(o)
	require.NoError(t, err)

	require.NoError(t, s.ProcessOrder(context.Background(), o))
	require.Equal(t, StatusPaid, o.Status())

	err = s.ProcessOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusPaid, o.Status())
	assert.Equal(t, []int{21500}, proc.amounts, "processor must be charged exactly once")
}

func TestProcessOrderCanceledOrderNotCharged(t *testing.T) {
	proc := &fakeProcessor{}
	s := NewSystem(proc)
	o := newTestOrder(t)
	_, err := s.RegisterOrder(o)
	require.NoError(t, err)
	require.NoError(t, o.SetStatus(StatusCanceled))

	err = s.ProcessOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, proc.amounts)
}

type blockingProcessor struct{}

func (blockingProcessor) ProcessPayment(ctx context.Context, _ string, _ int) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestProcessOrderPaymentTimeout(t *testing.T) {
	s := NewSystem(blockingProcessor{}, WithPaymentTimeout(10*time.Millisecond))
	o := newTestOrder(t)
	_, err := s.RegisterOrder(o)
	require.NoError(t, err)

	err = s.ProcessOrder(context.Background(), o)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusOpen, o.Status())
}

func TestProcessOrderUnregistered(t *testing.T) {
	s := NewSystem(&fakeProcessor{})
	o := newTestOrder(t)
	err := s.ProcessOrder(context.Background(), o)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRegisterOrderUniqueIDs(t *testing.T) {
	s := NewSystem(&fakeProcessor{})
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := s.RegisterOrder(NewOrder(Customer{ID: i}))
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
