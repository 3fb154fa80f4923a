package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans out timeline events to websocket subscribers. Topics are
// usernames; an event published for a username reaches every local
// subscriber and, through redis, subscribers on other instances.
type Hub struct {
	redis       *redis.Client
	subscribers map[string]map[*Subscriber]struct{}
	mu          sync.RWMutex
}

type Subscriber struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:       redisClient,
		subscribers: map[string]map[*Subscriber]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = map[*Subscriber]struct{}{}
	}
	h.subscribers[topic][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicSubs, ok := h.subscribers[sub.Topic]; ok {
		delete(topicSubs, sub)
		if len(topicSubs) == 0 {
			delete(h.subscribers, sub.Topic)
		}
	}
	// every send holds the read lock, so nothing can be mid-send here
	close(sub.Send)
}

// Broadcast delivers payload to every local subscriber of topic and
// publishes it to redis for other instances. Sends happen under the
// read lock so Unsubscribe cannot delete or close a channel mid-send;
// they are non-blocking, so a slow consumer drops messages rather than
// holding the lock.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	for sub := range h.subscribers[topic] {
		select {
		case sub.Send <- payload:
		default:
		}
	}
	h.mu.RUnlock()

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "posts:*:created")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		topic := topicFromChannel(msg.Channel)
		h.mu.RLock()
		for sub := range h.subscribers[topic] {
			select {
			case sub.Send <- []byte(msg.Payload):
			default:
			}
		}
		h.mu.RUnlock()
	}
}

func redisChannel(topic string) string {
	return "posts:" + topic + ":created"
}

func topicFromChannel(ch string) string {
	// posts:{username}:created
	const prefix = "posts:"
	const suffix = ":created"
	if len(ch) <= len(prefix)+len(suffix) || !strings.HasPrefix(ch, prefix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
