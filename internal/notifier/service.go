package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/webshop/order-api/internal/kafka"
	"github.com/webshop/order-api/internal/orders"
	"github.com/webshop/order-api/internal/redisx"
)

// Service consumes order.placed events and emits dispatch notifications.
// Stock is already settled inside the placement transaction, so this is
// purely a downstream reaction.
type Service struct {
	Redis       *redis.Client
	Log         *zap.Logger
	ServiceName string
}

// HandleOrderPlaced is wired as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup on event_id, redelivery is normal with manual commits
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	s.Log.Info("order placed, notifying dispatch",
		zap.Int64("order_id", p.OrderID),
		zap.String("status", string(p.Status)),
		zap.Int("items", len(p.Items)),
		zap.String("event_id", env.EventID))
	return nil
}
