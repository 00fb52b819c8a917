// Package redis caches single-order read models. Entries live for a short
// TTL and are invalidated by the outbox dispatch job whenever an order
// transitions, so a stale stage is never served longer than one dispatch
// cycle.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	keyOrder = "order:%s"

	ttlOrder = 5 * time.Minute
)

// OrderCache implements queries.OrderCache on top of go-redis.
type OrderCache struct {
	client *redis.Client
}

// NewOrderCache creates a cache backed by the given Redis address.
func NewOrderCache(addr string) *OrderCache {
	return &OrderCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached read model for an order, or nil on a miss.
func (c *OrderCache) Get(ctx context.Context, orderID kernel.UUID) (*queries.GetOrderQueryResponse, error) {
	raw, err := c.client.Get(ctx, orderKey(orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var response queries.GetOrderQueryResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		// A corrupt entry behaves like a miss; the next Set replaces it.
		return nil, nil
	}

	return &response, nil
}

// Set stores a read model under the order's key.
func (c *OrderCache) Set(ctx context.Context, response queries.GetOrderQueryResponse) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, orderKey(response.ID), raw, ttlOrder).Err()
}

// Invalidate drops the cached read model for an order.
func (c *OrderCache) Invalidate(ctx context.Context, orderID kernel.UUID) error {
	return c.client.Del(ctx, orderKey(orderID)).Err()
}

// Close releases the underlying client's connections.
func (c *OrderCache) Close() error {
	return c.client.Close()
}

func orderKey(orderID kernel.UUID) string {
	return fmt.Sprintf(keyOrder, orderID)
}
