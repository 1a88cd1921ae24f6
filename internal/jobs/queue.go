package jobs

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// StreamQueue publishes maintenance tasks onto a redis stream for an
// out-of-process consumer.
type StreamQueue struct {
	client *redis.Client
	stream string
}

func NewStreamQueue(client *redis.Client, stream string) *StreamQueue {
	return &StreamQueue{client: client, stream: stream}
}

func (q *StreamQueue) Enqueue(ctx context.Context, payload map[string]any) error {
	_, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: payload,
	}).Result()
	return err
}
