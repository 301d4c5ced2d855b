// Package redisdedupe screens redelivered button interactions using a
// SET-if-not-exists key per interaction ID. The store-level vote guard
// stays authoritative.
package redisdedupe

import (
	"StackBot/internal/domain/repository"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "interaction:"

type Deduper struct {
	client *redis.Client
	ttl    time.Duration
}

var _ repository.InteractionDeduper = (*Deduper)(nil)

func NewDeduper(client *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{client: client, ttl: ttl}
}

// FirstDelivery reports whether this interaction ID is seen for the first
// time within the TTL window.
func (d *Deduper) FirstDelivery(ctx context.Context, interactionID string) (bool, error) {
	return d.client.SetNX(ctx, keyPrefix+interactionID, 1, d.ttl).Result()
}
