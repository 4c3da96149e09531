package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Document represents a tracked unit of official correspondence. The three
// variants (incoming, outgoing, internal) share one model dispatched by the
// Kind tag; there is no runtime type narrowing anywhere in the codebase.
type Document struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	Kind             DocumentKind   `db:"kind" json:"kind"`
	DocumentNumber   string         `db:"document_number" json:"document_number"`
	Title            string         `db:"title" json:"title"`
	DocumentType     string         `db:"document_type" json:"document_type"`
	Status           DocumentStatus `db:"status" json:"status"`
	Version          int            `db:"version" json:"version"`
	ProcessDeadline  *time.Time     `db:"process_deadline" json:"process_deadline"`
	CreatedBy        uuid.UUID      `db:"created_by" json:"created_by"`
	PrimaryProcessor *uuid.UUID     `db:"primary_processor" json:"primary_processor"`
	SignerID         *uuid.UUID     `db:"signer_id" json:"signer_id"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// DocumentHistory is one immutable audit record of an action taken on a
// document. Rows are append-only; nothing updates or deletes them. Statuses
// are persisted as stable codes.
type DocumentHistory struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	DocumentID     uuid.UUID     `db:"document_id" json:"document_id"`
	Action         HistoryAction `db:"action" json:"action"`
	PreviousStatus string        `db:"previous_status" json:"previous_status"`
	NewStatus      string        `db:"new_status" json:"new_status"`
	PerformedBy    uuid.UUID     `db:"performed_by" json:"performed_by"`
	AssignedTo     *uuid.UUID    `db:"assigned_to" json:"assigned_to"`
	Comments       string        `db:"comments" json:"comments"`
	AttachmentKey  string        `db:"attachment_key" json:"attachment_key"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// Department is a node in the organizational hierarchy. ParentID is nil for
// top-level departments.
type Department struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Code      string     `db:"code" json:"code"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parent_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// DepartmentAssignment links a document to a department. At most one
// assignment per document is primary among departments that are not in an
// ancestor/descendant relationship with each other.
type DepartmentAssignment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	DocumentID   uuid.UUID  `db:"document_id" json:"document_id"`
	DepartmentID uuid.UUID  `db:"department_id" json:"department_id"`
	IsPrimary    bool       `db:"is_primary" json:"is_primary"`
	AssignedBy   uuid.UUID  `db:"assigned_by" json:"assigned_by"`
	AssignedAt   time.Time  `db:"assigned_at" json:"assigned_at"`
	DueDate      *time.Time `db:"due_date" json:"due_date"`
	Comments     string     `db:"comments" json:"comments"`
}

// User represents an authenticated user with a role-name set.
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	FullName     string         `db:"full_name" json:"full_name"`
	Roles        pq.StringArray `db:"roles" json:"roles"`
	DepartmentID *uuid.UUID     `db:"department_id" json:"department_id"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Notification is a persisted copy of a message delivered to a user's
// channel. Delivery itself is best-effort; the row is the record.
type Notification struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	RecipientID uuid.UUID        `db:"recipient_id" json:"recipient_id"`
	EntityID    uuid.UUID        `db:"entity_id" json:"entity_id"`
	EntityType  string           `db:"entity_type" json:"entity_type"`
	Type        NotificationType `db:"type" json:"type"`
	Content     string           `db:"content" json:"content"`
	IsRead      bool             `db:"is_read" json:"is_read"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// DocumentRelationship links an outgoing document to an incoming document it
// responds to. Used for mirroring feedback onto the originating documents.
type DocumentRelationship struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	OutgoingDocumentID uuid.UUID `db:"outgoing_document_id" json:"outgoing_document_id"`
	IncomingDocumentID uuid.UUID `db:"incoming_document_id" json:"incoming_document_id"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// StatusCount is one row of a status aggregation.
type StatusCount struct {
	Status DocumentStatus `db:"status" json:"status"`
	Count  int            `db:"count" json:"count"`
}

// DepartmentCount is one row of a per-department workload aggregation.
type DepartmentCount struct {
	DepartmentID   uuid.UUID `db:"department_id" json:"department_id"`
	DepartmentName string    `db:"department_name" json:"department_name"`
	Count          int       `db:"count" json:"count"`
}

// Dashboard is the role-scoped reporting view.
type Dashboard struct {
	TotalDocuments int               `json:"total_documents"`
	ByStatus       []StatusCount     `json:"by_status"`
	ByDepartment   []DepartmentCount `json:"by_department"`
	Overdue        []Document        `json:"overdue"`
	Upcoming       []Document        `json:"upcoming"`
}
