package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Version == 0 {
		doc.Version = 1
	}

	query := `INSERT INTO documents (
		id, kind, document_number, title, document_type,
		status, version, process_deadline,
		created_by, primary_processor, signer_id,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10, $11,
		$12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Kind, doc.DocumentNumber, doc.Title, doc.DocumentType,
		doc.Status, doc.Version, doc.ProcessDeadline,
		doc.CreatedBy, doc.PrimaryProcessor, doc.SignerID,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "document_number") {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByNumber(ctx context.Context, kind domain.DocumentKind, number string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE kind = $1 AND document_number = $2", kind, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByNumber: %w", err)
	}
	return &doc, nil
}

// buildFilter translates a DocumentFilter into a WHERE clause and args,
// starting placeholder numbering at 1.
func buildFilter(filter port.DocumentFilter) (string, []interface{}) {
	clauses := []string{"1 = 1"}
	var args []interface{}
	n := 1

	if filter.Kind != "" {
		clauses = append(clauses, fmt.Sprintf("kind = $%d", n))
		args = append(args, filter.Kind)
		n++
	}
	if len(filter.Statuses) > 0 {
		codes := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			codes[i] = string(s)
		}
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", n))
		args = append(args, pq.Array(codes))
		n++
	}
	if filter.DepartmentID != nil {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM department_assignments da WHERE da.document_id = documents.id AND da.department_id = $%d)", n))
		args = append(args, *filter.DepartmentID)
		n++
	}
	if filter.CreatedBy != nil {
		clauses = append(clauses, fmt.Sprintf("created_by = $%d", n))
		args = append(args, *filter.CreatedBy)
		n++
	}
	if filter.From != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", n))
		args = append(args, *filter.From)
		n++
	}
	if filter.To != nil {
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", n))
		args = append(args, *filter.To)
		n++
	}

	return strings.Join(clauses, " AND "), args
}

func (r *documentRepo) List(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where, args := buildFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	pageArgs := append(args, limit, offset)
	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		fmt.Sprintf("SELECT * FROM documents WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
			where, len(args)+1, len(args)+2),
		pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			title = $1, document_type = $2, process_deadline = $3,
			primary_processor = $4, signer_id = $5, updated_at = $6
		 WHERE id = $7`,
		doc.Title, doc.DocumentType, doc.ProcessDeadline,
		doc.PrimaryProcessor, doc.SignerID, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, version = version + 1, updated_at = $2
		 WHERE id = $3 AND version = $4`,
		doc.Status, doc.UpdatedAt, doc.ID, doc.Version)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		// Either the row is gone or another writer bumped the version first.
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)", doc.ID); err == nil && !exists {
			return domain.ErrDocumentNotFound
		}
		return domain.ErrVersionConflict
	}
	doc.Version++
	return nil
}

func (r *documentRepo) UpdatePrimaryProcessor(ctx context.Context, docID uuid.UUID, processorID *uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET primary_processor = $1, updated_at = $2 WHERE id = $3",
		processorID, time.Now().UTC(), docID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdatePrimaryProcessor: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, docID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", docID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
