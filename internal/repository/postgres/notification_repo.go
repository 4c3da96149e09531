package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (
			id, recipient_id, entity_id, entity_type, type, content, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.RecipientID, n.EntityID, n.EntityType, n.Type, n.Content, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	where := "recipient_id = $1"
	if unreadOnly {
		where += " AND is_read = FALSE"
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM notifications WHERE "+where, recipientID)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByRecipient count: %w", err)
	}

	var out []domain.Notification
	err = r.db.SelectContext(ctx, &out,
		"SELECT * FROM notifications WHERE "+where+" ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		recipientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByRecipient: %w", err)
	}
	return out, total, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID)
	if err != nil {
		return 0, fmt.Errorf("notificationRepo.CountUnread: %w", err)
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND id = ANY($2)",
		recipientID, pq.Array(raw))
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkRead: %w", err)
	}
	return nil
}
