package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/retailcore/go-pos/internal/kafka"
	"github.com/retailcore/go-pos/internal/pos"
)

// Notifier publishes the ready-to-ship signal as an OrderPaid event. It is
// the POS system's fulfillment collaborator; the consumer side picks the
// event up in Service.
type Notifier struct {
	Producer kafkax.Publisher
	Service  string
}

func (n *Notifier) ReadyToShip(ctx context.Context, o *pos.Order) {
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     pos.EventOrderPaid,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      n.Service,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(pos.OrderPaidPayload{
			OrderID:     o.ID,
			AmountCents: o.TotalCents(),
		}),
	}
	n.Producer.Publish(pos.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventOrderPaid)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
