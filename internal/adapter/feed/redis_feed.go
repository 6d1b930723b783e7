package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/ports"
)

// RedisFeed carries row-change notifications over Redis pub/sub, one channel
// per table. It implements both ports.ChangeFeed and ports.EventPublisher so
// a session is a producer and a consumer of the same stream.
type RedisFeed struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
}

// NewRedisFeed builds a feed whose channels are named "<prefix>:<table>".
func NewRedisFeed(client *redis.Client, prefix string, log *zap.Logger) *RedisFeed {
	if prefix == "" {
		prefix = "changes"
	}
	return &RedisFeed{client: client, prefix: prefix, log: log}
}

func (f *RedisFeed) channelFor(table string) string {
	return fmt.Sprintf("%s:%s", f.prefix, table)
}

func (f *RedisFeed) PublishChange(ctx context.Context, event ports.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	return f.client.Publish(ctx, f.channelFor(event.Table), payload).Err()
}

// Subscribe delivers change events for one table until the context is
// cancelled, then closes the channel. Malformed payloads are dropped with a
// warning rather than tearing the subscription down.
func (f *RedisFeed) Subscribe(ctx context.Context, table string) (<-chan ports.ChangeEvent, error) {
	sub := f.client.Subscribe(ctx, f.channelFor(table))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", f.channelFor(table), err)
	}

	out := make(chan ports.ChangeEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event ports.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.log.Warn("dropping malformed change event",
						zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
