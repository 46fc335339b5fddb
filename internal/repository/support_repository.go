package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edulane/tutoring-api/internal/models"
)

// SupportRepository manages persistence for helpdesk tickets, thread
// messages and attachment metadata.
type SupportRepository struct {
	db *sqlx.DB
}

// NewSupportRepository constructs a new repository.
func NewSupportRepository(db *sqlx.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

const ticketColumns = "id, requester_id, subject, category, status, priority, assignee_id, resolved_at, created_at, updated_at"

// CreateTicket inserts a new ticket.
func (r *SupportRepository) CreateTicket(ctx context.Context, ticket *models.SupportTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	query := `INSERT INTO support_tickets (id, requester_id, subject, category, status, priority, assignee_id, resolved_at, created_at, updated_at)
VALUES (:id, :requester_id, :subject, :category, :status, :priority, :assignee_id, :resolved_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// FindTicketByID loads a single ticket.
func (r *SupportRepository) FindTicketByID(ctx context.Context, id string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	query := fmt.Sprintf("SELECT %s FROM support_tickets WHERE id = $1", ticketColumns)
	if err := r.db.GetContext(ctx, &ticket, query, id); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListTickets returns tickets per provided filter.
func (r *SupportRepository) ListTickets(ctx context.Context, filter models.SupportTicketFilter) ([]models.SupportTicket, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.RequesterID != "" {
		where = append(where, fmt.Sprintf("requester_id = $%d", len(args)+1))
		args = append(args, filter.RequesterID)
	}
	if filter.AssigneeID != "" {
		where = append(where, fmt.Sprintf("assignee_id = $%d", len(args)+1))
		args = append(args, filter.AssigneeID)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		where = append(where, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *filter.Priority)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM support_tickets WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d", ticketColumns, whereClause, size, offset)
	var tickets []models.SupportTicket
	if err := r.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM support_tickets WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}
	return tickets, total, nil
}

// UpdateTicketStatus persists a status change, stamping resolved_at when
// the ticket moves to resolved and clearing it on reopen.
func (r *SupportRepository) UpdateTicketStatus(ctx context.Context, id string, status models.TicketStatus) error {
	now := time.Now().UTC()
	var resolvedAt *time.Time
	if status == models.TicketStatusResolved {
		resolvedAt = &now
	}
	query := `UPDATE support_tickets SET status = $1, resolved_at = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, status, resolvedAt, now, id)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update ticket status: ticket %s not found", id)
	}
	return nil
}

// AssignTicket sets the staff member working the ticket.
func (r *SupportRepository) AssignTicket(ctx context.Context, id, assigneeID string) error {
	query := `UPDATE support_tickets SET assignee_id = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, assigneeID, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("assign ticket: %w", err)
	}
	return nil
}

// InsertMessage appends a message to a ticket thread and touches the
// ticket's updated_at so listings order by recent activity.
func (r *SupportRepository) InsertMessage(ctx context.Context, message *models.SupportMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert message: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO support_messages (id, ticket_id, author_id, author_role, body, created_at)
VALUES (:id, :ticket_id, :author_id, :author_role, :body, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE support_tickets SET updated_at = $1 WHERE id = $2", message.CreatedAt, message.TicketID); err != nil {
		return fmt.Errorf("touch ticket: %w", err)
	}
	return tx.Commit()
}

// ListMessages returns a ticket's thread oldest first.
func (r *SupportRepository) ListMessages(ctx context.Context, ticketID string) ([]models.SupportMessage, error) {
	query := `SELECT id, ticket_id, author_id, author_role, body, created_at
FROM support_messages WHERE ticket_id = $1 ORDER BY created_at ASC`
	var messages []models.SupportMessage
	if err := r.db.SelectContext(ctx, &messages, query, ticketID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// InsertAttachments records attachment metadata for a message.
func (r *SupportRepository) InsertAttachments(ctx context.Context, attachments []models.SupportAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range attachments {
		if attachments[i].ID == "" {
			attachments[i].ID = uuid.NewString()
		}
		attachments[i].CreatedAt = now
	}
	query := `INSERT INTO support_attachments (id, message_id, file_name, content_type, size_bytes, storage_key, created_at)
VALUES (:id, :message_id, :file_name, :content_type, :size_bytes, :storage_key, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attachments); err != nil {
		return fmt.Errorf("insert attachments: %w", err)
	}
	return nil
}

// FindAttachmentByID loads a single attachment's metadata.
func (r *SupportRepository) FindAttachmentByID(ctx context.Context, id string) (*models.SupportAttachment, error) {
	var attachment models.SupportAttachment
	query := `SELECT id, message_id, file_name, content_type, size_bytes, storage_key, created_at
FROM support_attachments WHERE id = $1`
	if err := r.db.GetContext(ctx, &attachment, query, id); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListAttachmentsByMessageIDs returns attachment metadata grouped by message.
func (r *SupportRepository) ListAttachmentsByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.SupportAttachment, error) {
	grouped := make(map[string][]models.SupportAttachment)
	if len(messageIDs) == 0 {
		return grouped, nil
	}
	query := `SELECT id, message_id, file_name, content_type, size_bytes, storage_key, created_at
FROM support_attachments WHERE message_id = ANY($1) ORDER BY created_at ASC`
	var attachments []models.SupportAttachment
	if err := r.db.SelectContext(ctx, &attachments, query, pq.Array(messageIDs)); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	for _, attachment := range attachments {
		grouped[attachment.MessageID] = append(grouped[attachment.MessageID], attachment)
	}
	return grouped, nil
}
