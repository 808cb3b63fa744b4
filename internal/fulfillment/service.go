package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/retailcore/go-pos/internal/kafka"
	"github.com/retailcore/go-pos/internal/pos"
	"github.com/retailcore/go-pos/internal/redisx"
)

// Service consumes OrderPaid events and ships the order: here that is a log
// line plus an OrderShipped event. It keeps no state of its own beyond the
// redis dedup keys.
type Service struct {
	Redis       *redis.Client
	Producer    kafkax.Publisher
	ServiceName string
}

// HandleOrderPaid is mounted as a consumer handler.
func (s *Service) HandleOrderPaid(ctx context.Context, m kafkago.Message) error {
	var env pos.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != pos.EventOrderPaid {
		return nil
	} // ignore

	// dedup via Redis on event_id; replays are expected, not errors
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[pos.OrderPaidPayload](env.Payload)
	if err != nil {
		return err
	}

	log.Printf("shipping order %s to customer", p.OrderID)
	return s.publishShipped(p.OrderID, env.TraceID)
}

func (s *Service) publishShipped(orderID, trace string) error {
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     pos.EventOrderShipped,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(pos.OrderShippedPayload{
			OrderID:   orderID,
			ShippedAt: time.Now().UTC(),
		}),
	}
	s.Producer.Publish(pos.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventOrderShipped)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}
