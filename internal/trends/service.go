package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ecofinds/ecofinds-backend/internal/kafka"
	"github.com/ecofinds/ecofinds-backend/internal/orders"
	"github.com/ecofinds/ecofinds-backend/internal/redisx"
)

// Service maintains purchase counters for products and categories from the
// order event stream. Counters live in Redis sorted sets so "most purchased"
// reads are a single ZREVRANGE.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderCreated is the consumer handler for order.created events.
// Events are deduplicated by event id so redelivery cannot double-count.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	dkey := redisx.DedupKey(s.ServiceName, env.EventID)
	seen, err := redisx.Exists(ctx, s.Redis, dkey)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	payload, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	pipe := s.Redis.TxPipeline()
	for _, line := range payload.Lines {
		pipe.ZIncrBy(ctx, redisx.KeyTrendingProducts,
			float64(line.Quantity), strconv.FormatInt(line.ProductID, 10))
		if line.CategoryID != nil {
			pipe.ZIncrBy(ctx, redisx.KeyTrendingCategories,
				float64(line.Quantity), strconv.FormatInt(*line.CategoryID, 10))
		}
	}
	pipe.Set(ctx, dkey, "1", redisx.TTLDedup)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("trend counters: %w", err)
	}
	return nil
}
