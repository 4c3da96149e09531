package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a new PostgreSQL-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) port.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, entry *domain.DocumentHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO document_history (
		id, document_id, action, previous_status, new_status,
		performed_by, assigned_to, comments, attachment_key, created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10
	)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.DocumentID, entry.Action, entry.PreviousStatus, entry.NewStatus,
		entry.PerformedBy, entry.AssignedTo, entry.Comments, entry.AttachmentKey, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("historyRepo.Create: %w", err)
	}
	return nil
}

func (r *historyRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DocumentHistory, error) {
	var entries []domain.DocumentHistory
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM document_history WHERE document_id = $1 ORDER BY created_at DESC",
		docID)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.ListByDocument: %w", err)
	}
	return entries, nil
}

func (r *historyRepo) GetLastByDocumentAndUser(ctx context.Context, docID, userID uuid.UUID) (*domain.DocumentHistory, error) {
	var entry domain.DocumentHistory
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM document_history
		 WHERE document_id = $1 AND performed_by = $2
		 ORDER BY created_at DESC LIMIT 1`,
		docID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("historyRepo.GetLastByDocumentAndUser: %w", err)
	}
	return &entry, nil
}

func (r *historyRepo) ExistsByDocumentAndStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM document_history WHERE document_id = $1 AND new_status = $2)",
		docID, string(status))
	if err != nil {
		return false, fmt.Errorf("historyRepo.ExistsByDocumentAndStatus: %w", err)
	}
	return exists, nil
}
