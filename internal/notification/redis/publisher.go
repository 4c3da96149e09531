// Package redis delivers notifications over Redis pub/sub channels, one
// channel per recipient. The notification row is persisted first; publishing
// is best-effort on top of it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type publisher struct {
	client *redis.Client
	repo   port.NotificationRepository
}

// NewPublisher connects to Redis and returns a NotificationSink that persists
// each notification and publishes it to the recipient's channel.
func NewPublisher(redisURL string, repo port.NotificationRepository) (port.NotificationSink, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &publisher{client: client, repo: repo}, nil
}

func (p *publisher) CreateAndSend(ctx context.Context, entityID uuid.UUID, entityType string, recipientID uuid.UUID, ntype domain.NotificationType, content string) error {
	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		EntityID:    entityID,
		EntityType:  entityType,
		Type:        ntype,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("redisPublisher.CreateAndSend: %w", err)
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("redisPublisher.CreateAndSend: %w", err)
	}
	channel := "notifications:" + recipientID.String()
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		// The row is already persisted; the live push is best-effort.
		log.Printf("redisPublisher.CreateAndSend: publish to %s failed: %v", channel, err)
	}
	return nil
}
