package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type relationshipRepo struct {
	db *sqlx.DB
}

// NewRelationshipRepo creates a new PostgreSQL-backed RelationshipRepository.
func NewRelationshipRepo(db *sqlx.DB) port.RelationshipRepository {
	return &relationshipRepo{db: db}
}

func (r *relationshipRepo) Link(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_relationships (id, outgoing_document_id, incoming_document_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), outgoingID, incomingID, time.Now().UTC())
	if err != nil {
		// Linking the same pair twice is a no-op.
		if strings.Contains(err.Error(), "duplicate key") {
			return nil
		}
		return fmt.Errorf("relationshipRepo.Link: %w", err)
	}
	return nil
}

func (r *relationshipRepo) Unlink(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM document_relationships WHERE outgoing_document_id = $1 AND incoming_document_id = $2",
		outgoingID, incomingID)
	if err != nil {
		return fmt.Errorf("relationshipRepo.Unlink: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *relationshipRepo) ListIncomingForOutgoing(ctx context.Context, outgoingID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT d.* FROM documents d
		 JOIN document_relationships dr ON dr.incoming_document_id = d.id
		 WHERE dr.outgoing_document_id = $1
		 ORDER BY d.created_at ASC`,
		outgoingID)
	if err != nil {
		return nil, fmt.Errorf("relationshipRepo.ListIncomingForOutgoing: %w", err)
	}
	return docs, nil
}
