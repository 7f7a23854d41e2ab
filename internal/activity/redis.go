package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rohits-web03/minitracker/internal/metrics"
)

const (
	DefaultChannel = "tracker:activity"
	publishTimeout = 2 * time.Second
)

// Event is the JSON payload published for every swarm event.
type Event struct {
	UserID    *uuid.UUID `json:"userId,omitempty"`
	FileID    *uuid.UUID `json:"fileId,omitempty"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}

// RedisPublisher broadcasts swarm events on a Redis pub/sub channel so
// dashboards can follow swarms live. Delivery is best effort.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	log     zerolog.Logger
	now     func() time.Time
}

func NewRedisPublisher(client *redis.Client, channel string, log zerolog.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel, log: log, now: time.Now}
}

func (p *RedisPublisher) Record(ctx context.Context, userID, fileID *uuid.UUID, message string) {
	data, err := json.Marshal(Event{
		UserID:    userID,
		FileID:    fileID,
		Message:   message,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		p.fail(err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.fail(err)
	}
}

// Subscribe returns a subscription to the activity channel.
func (p *RedisPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, p.channel)
}

func (p *RedisPublisher) fail(err error) {
	metrics.ActivityFailuresTotal.WithLabelValues("redis").Inc()
	p.log.Warn().Err(err).Str("channel", p.channel).Msg("Failed to publish activity")
}
