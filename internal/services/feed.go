package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis pub/sub channel carrying comment mutations.
const FeedChannel = "comments:events"

// Feed event types.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// FeedEvent is the payload broadcast to live-feed subscribers whenever the
// comment collection changes. Subscribers treat any event as an invitation
// to re-deliver the full current snapshot, not as a delta.
type FeedEvent struct {
	Type      string    `json:"type"`
	CommentID string    `json:"comment_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedHub is an in-process registry of live-feed subscribers.
type FeedHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan FeedEvent
}

func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[int]chan FeedEvent)}
}

// Subscribe registers a subscriber and returns its event channel plus an
// unsubscribe func that closes the channel.
func (h *FeedHub) Subscribe() (<-chan FeedEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan FeedEvent, 8)
	h.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// fanOut delivers an event to every subscriber. Slow subscribers with a
// full buffer are skipped rather than blocking the rest.
func (h *FeedHub) fanOut(event FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// FeedBus publishes comment mutations. With Redis configured, events go
// through the shared channel so every instance's hub sees them; without
// Redis they fan out to the local hub only.
type FeedBus struct {
	hub     *FeedHub
	redis   *redis.Client
	started sync.Once
}

func NewFeedBus(hub *FeedHub, redisClient *redis.Client) *FeedBus {
	return &FeedBus{hub: hub, redis: redisClient}
}

// Publish broadcasts a mutation event.
func (b *FeedBus) Publish(ctx context.Context, eventType, commentID string) {
	event := FeedEvent{
		Type:      eventType,
		CommentID: commentID,
		Timestamp: time.Now(),
	}

	if b.redis == nil {
		b.hub.fanOut(event)
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling feed event: %v", err)
		return
	}
	if err := b.redis.Publish(ctx, FeedChannel, payload).Err(); err != nil {
		log.Printf("error publishing feed event to Redis: %v", err)
		// Degrade to local fan-out so this instance's subscribers still update.
		b.hub.fanOut(event)
	}
}

// StartSubscriber runs a single shared Redis listener per instance that
// feeds the local hub. No-op without Redis.
func (b *FeedBus) StartSubscriber(ctx context.Context) {
	if b.redis == nil {
		return
	}
	b.started.Do(func() {
		go b.runSubscriber(ctx)
	})
}

func (b *FeedBus) runSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := b.redis.Subscribe(ctx, FeedChannel)
			defer pubsub.Close()

			log.Printf("✅ Feed Redis subscriber started (channel: %s)", FeedChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("error unmarshaling feed event: %v", err)
					continue
				}
				b.hub.fanOut(event)
			}
		}()

		if ctx.Err() != nil {
			return
		}
	}
}
