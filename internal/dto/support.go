package dto

import "github.com/edulane/tutoring-api/internal/models"

// AttachmentInput carries file metadata for an already-uploaded binary.
// The upload itself happens against the storage service; this API only
// records the reference.
type AttachmentInput struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,gt=0"`
	StorageKey  string `json:"storage_key" validate:"required"`
}

// CreateTicketRequest opens a new helpdesk ticket with its first message.
type CreateTicketRequest struct {
	Subject     string            `json:"subject" validate:"required,max=200"`
	Category    string            `json:"category" validate:"required"`
	Priority    string            `json:"priority" validate:"omitempty,oneof=low medium high"`
	Body        string            `json:"body" validate:"required"`
	Attachments []AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

// ReplyRequest appends a message to a ticket thread.
type ReplyRequest struct {
	Body        string            `json:"body" validate:"required"`
	Attachments []AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

// TransitionRequest moves a ticket through its lifecycle.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// MessageResponse is one thread entry with its attachment metadata.
type MessageResponse struct {
	models.SupportMessage
	Attachments []models.SupportAttachment `json:"attachments,omitempty"`
}

// TicketResponse is a ticket with its full thread.
type TicketResponse struct {
	models.SupportTicket
	Messages []MessageResponse `json:"messages,omitempty"`
}
