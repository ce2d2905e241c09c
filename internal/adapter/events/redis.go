// Package events publishes domain events over Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hifzhub/murajaah/internal/entity"
)

// ReviewCompletedChannel is the pub/sub channel for completed reviews.
const ReviewCompletedChannel = "events:review_completed"

// RedisPublisher emits events as JSON messages on Redis channels.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps an existing Redis connection.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// PublishReviewCompleted fans the event out to subscribers. Delivery is
// best effort; callers log and continue on failure.
func (p *RedisPublisher) PublishReviewCompleted(ctx context.Context, event entity.ReviewCompleted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode review completed event: %w", err)
	}
	if err := p.client.Publish(ctx, ReviewCompletedChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish review completed event: %w", err)
	}
	return nil
}
