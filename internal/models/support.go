package models

import "time"

// TicketStatus represents the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid returns true when the status is a supported value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// Resolved and closed tickets may be reopened.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	switch s {
	case TicketStatusOpen:
		return next == TicketStatusInProgress || next == TicketStatusResolved
	case TicketStatusInProgress:
		return next == TicketStatusResolved
	case TicketStatusResolved:
		return next == TicketStatusClosed || next == TicketStatusOpen
	case TicketStatusClosed:
		return next == TicketStatusOpen
	default:
		return false
	}
}

// TicketPriority represents urgency assigned by the requester.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid returns true when the priority is a supported value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	default:
		return false
	}
}

// SupportTicket represents a helpdesk ticket raised by a parent or teacher.
type SupportTicket struct {
	ID          string         `db:"id" json:"id"`
	RequesterID string         `db:"requester_id" json:"requester_id"`
	Subject     string         `db:"subject" json:"subject"`
	Category    string         `db:"category" json:"category"`
	Status      TicketStatus   `db:"status" json:"status"`
	Priority    TicketPriority `db:"priority" json:"priority"`
	AssigneeID  *string        `db:"assignee_id" json:"assignee_id,omitempty"`
	ResolvedAt  *time.Time     `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// SupportMessage represents a single entry in a ticket thread.
type SupportMessage struct {
	ID         string    `db:"id" json:"id"`
	TicketID   string    `db:"ticket_id" json:"ticket_id"`
	AuthorID   string    `db:"author_id" json:"author_id"`
	AuthorRole UserRole  `db:"author_role" json:"author_role"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SupportAttachment records file metadata attached to a message. The
// binary itself lives in external object storage under StorageKey.
type SupportAttachment struct {
	ID          string    `db:"id" json:"id"`
	MessageID   string    `db:"message_id" json:"message_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// DownloadURL is a signed, short-lived token minted when the thread
	// is read. It is never persisted.
	DownloadURL     string     `db:"-" json:"download_url,omitempty"`
	DownloadExpires *time.Time `db:"-" json:"download_expires,omitempty"`
}

// SupportTicketFilter defines query filters for ticket listings.
type SupportTicketFilter struct {
	RequesterID string
	AssigneeID  string
	Status      *TicketStatus
	Priority    *TicketPriority
	Page        int
	PageSize    int
}
