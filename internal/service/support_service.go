package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/models"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

type supportRepo interface {
	CreateTicket(ctx context.Context, ticket *models.SupportTicket) error
	FindTicketByID(ctx context.Context, id string) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, filter models.SupportTicketFilter) ([]models.SupportTicket, int, error)
	UpdateTicketStatus(ctx context.Context, id string, status models.TicketStatus) error
	AssignTicket(ctx context.Context, id, assigneeID string) error
	InsertMessage(ctx context.Context, message *models.SupportMessage) error
	ListMessages(ctx context.Context, ticketID string) ([]models.SupportMessage, error)
	InsertAttachments(ctx context.Context, attachments []models.SupportAttachment) error
	ListAttachmentsByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.SupportAttachment, error)
	FindAttachmentByID(ctx context.Context, id string) (*models.SupportAttachment, error)
}

type attachmentSigner interface {
	Generate(attachmentID, storageKey string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (attachmentID, storageKey string, expiresAt time.Time, err error)
}

// SupportServiceConfig tunes helpdesk behaviour.
type SupportServiceConfig struct {
	MaxAttachments  int
	DefaultPageSize int
	CacheTTL        time.Duration
}

// SupportService orchestrates the helpdesk ticket lifecycle and threads.
type SupportService struct {
	repo      supportRepo
	validator *validator.Validate
	signer    attachmentSigner
	cache     *CacheService
	logger    *zap.Logger
	cfg       SupportServiceConfig
}

// NewSupportService constructs a SupportService. The signer is optional;
// without it attachment metadata is served without download tokens. The
// cache is optional too; without it every thread read hits the database.
func NewSupportService(repo supportRepo, validate *validator.Validate, signer attachmentSigner, cache *CacheService, logger *zap.Logger, cfg SupportServiceConfig) *SupportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttachments <= 0 {
		cfg.MaxAttachments = 5
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &SupportService{repo: repo, validator: validate, signer: signer, cache: cache, logger: logger, cfg: cfg}
}

// Create opens a ticket with its first message.
func (s *SupportService) Create(ctx context.Context, requester *models.JWTClaims, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if requester == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ticket payload")
	}
	if len(req.Attachments) > s.cfg.MaxAttachments {
		return nil, appErrors.Clone(appErrors.ErrValidation, "too many attachments")
	}

	priority := models.TicketPriority(req.Priority)
	if req.Priority == "" {
		priority = models.TicketPriorityMedium
	}

	ticket := &models.SupportTicket{
		RequesterID: requester.UserID,
		Subject:     req.Subject,
		Category:    req.Category,
		Status:      models.TicketStatusOpen,
		Priority:    priority,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create ticket")
	}

	message, err := s.appendMessage(ctx, ticket.ID, requester, req.Body, req.Attachments)
	if err != nil {
		return nil, err
	}
	return &dto.TicketResponse{SupportTicket: *ticket, Messages: []dto.MessageResponse{*message}}, nil
}

// List returns tickets visible to the requester. Parents and teachers see
// their own tickets; support staff and admins see everything.
func (s *SupportService) List(ctx context.Context, requester *models.JWTClaims, filter models.SupportTicketFilter) ([]models.SupportTicket, *models.Pagination, error) {
	if requester == nil {
		return nil, nil, appErrors.ErrUnauthorized
	}
	if !isSupportStaff(requester.Role) {
		filter.RequesterID = requester.UserID
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.cfg.DefaultPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	tickets, total, err := s.repo.ListTickets(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tickets")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return tickets, pagination, nil
}

// Get loads a ticket with its full thread. The assembled thread is cached
// without download tokens; tokens are minted per read so their expiry is
// never frozen by the cache.
func (s *SupportService) Get(ctx context.Context, requester *models.JWTClaims, ticketID string) (*dto.TicketResponse, error) {
	ticket, err := s.loadVisibleTicket(ctx, requester, ticketID)
	if err != nil {
		return nil, err
	}

	cacheKey := threadCacheKey(ticket.ID)
	if s.cache != nil {
		var cached dto.TicketResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			s.signResponse(&cached)
			return &cached, nil
		}
	}

	messages, err := s.repo.ListMessages(ctx, ticket.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load thread")
	}
	messageIDs := make([]string, 0, len(messages))
	for _, message := range messages {
		messageIDs = append(messageIDs, message.ID)
	}
	attachments, err := s.repo.ListAttachmentsByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attachments")
	}

	response := &dto.TicketResponse{SupportTicket: *ticket}
	for _, message := range messages {
		response.Messages = append(response.Messages, dto.MessageResponse{
			SupportMessage: message,
			Attachments:    attachments[message.ID],
		})
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("thread cache write failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	s.signResponse(response)
	return response, nil
}

// ResolveAttachment validates a signed download token and returns the
// attachment metadata it refers to. The token is the credential; claims
// are only used to attribute the access in logs.
func (s *SupportService) ResolveAttachment(ctx context.Context, requester *models.JWTClaims, token string) (*models.SupportAttachment, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "download token is required")
	}
	if s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment downloads are not enabled")
	}

	attachmentID, storageKey, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}

	attachment, err := s.repo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attachment")
	}
	if attachment.StorageKey != storageKey {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "download token does not match attachment")
	}

	accessor := "anonymous"
	if requester != nil {
		accessor = requester.UserID
	}
	s.logger.Debug("attachment resolved", zap.String("attachment_id", attachment.ID), zap.String("accessed_by", accessor))
	return attachment, nil
}

func (s *SupportService) signResponse(response *dto.TicketResponse) {
	for i := range response.Messages {
		response.Messages[i].Attachments = s.signAttachments(response.Messages[i].Attachments)
	}
}

func (s *SupportService) signAttachments(attachments []models.SupportAttachment) []models.SupportAttachment {
	if s.signer == nil {
		return attachments
	}
	for i := range attachments {
		token, expires, err := s.signer.Generate(attachments[i].ID, attachments[i].StorageKey)
		if err != nil {
			s.logger.Warn("attachment token generation failed", zap.String("attachment_id", attachments[i].ID), zap.Error(err))
			continue
		}
		attachments[i].DownloadURL = "/support/attachments/" + token
		attachments[i].DownloadExpires = &expires
	}
	return attachments
}

// Reply appends a message to the thread. A staff reply on an open ticket
// moves it to in_progress automatically.
func (s *SupportService) Reply(ctx context.Context, requester *models.JWTClaims, ticketID string, req dto.ReplyRequest) (*dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reply payload")
	}
	if len(req.Attachments) > s.cfg.MaxAttachments {
		return nil, appErrors.Clone(appErrors.ErrValidation, "too many attachments")
	}

	ticket, err := s.loadVisibleTicket(ctx, requester, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketStatusClosed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "ticket is closed; reopen it to reply")
	}

	message, err := s.appendMessage(ctx, ticket.ID, requester, req.Body, req.Attachments)
	if err != nil {
		return nil, err
	}

	if isSupportStaff(requester.Role) && ticket.Status == models.TicketStatusOpen {
		if err := s.repo.UpdateTicketStatus(ctx, ticket.ID, models.TicketStatusInProgress); err != nil {
			s.logger.Warn("auto transition to in_progress failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	s.invalidateThread(ctx, ticket.ID)
	return message, nil
}

// Transition moves a ticket through its lifecycle. Requesters may reopen
// or resolve their own tickets; other transitions require support staff.
func (s *SupportService) Transition(ctx context.Context, requester *models.JWTClaims, ticketID string, req dto.TransitionRequest) (*models.SupportTicket, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transition payload")
	}

	ticket, err := s.loadVisibleTicket(ctx, requester, ticketID)
	if err != nil {
		return nil, err
	}

	next := models.TicketStatus(req.Status)
	if !ticket.Status.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "cannot move ticket from "+string(ticket.Status)+" to "+string(next))
	}
	if !isSupportStaff(requester.Role) && next != models.TicketStatusOpen && next != models.TicketStatusResolved {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "transition requires support staff")
	}

	if err := s.repo.UpdateTicketStatus(ctx, ticket.ID, next); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update ticket status")
	}
	if isSupportStaff(requester.Role) && next == models.TicketStatusInProgress && ticket.AssigneeID == nil {
		if err := s.repo.AssignTicket(ctx, ticket.ID, requester.UserID); err != nil {
			s.logger.Warn("ticket assignment failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	s.invalidateThread(ctx, ticket.ID)

	ticket.Status = next
	return ticket, nil
}

func (s *SupportService) invalidateThread(ctx context.Context, ticketID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, threadCacheKey(ticketID)); err != nil {
		s.logger.Warn("thread cache invalidation failed", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}

func threadCacheKey(ticketID string) string {
	return "support:ticket:" + ticketID
}

func (s *SupportService) loadVisibleTicket(ctx context.Context, requester *models.JWTClaims, ticketID string) (*models.SupportTicket, error) {
	if requester == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if ticketID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ticketId is required")
	}
	ticket, err := s.repo.FindTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ticket")
	}
	if !isSupportStaff(requester.Role) && ticket.RequesterID != requester.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "ticket does not belong to requester")
	}
	return ticket, nil
}

func (s *SupportService) appendMessage(ctx context.Context, ticketID string, author *models.JWTClaims, body string, inputs []dto.AttachmentInput) (*dto.MessageResponse, error) {
	message := &models.SupportMessage{
		TicketID:   ticketID,
		AuthorID:   author.UserID,
		AuthorRole: author.Role,
		Body:       body,
	}
	if err := s.repo.InsertMessage(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to append message")
	}

	attachments := make([]models.SupportAttachment, 0, len(inputs))
	for _, input := range inputs {
		attachments = append(attachments, models.SupportAttachment{
			MessageID:   message.ID,
			FileName:    input.FileName,
			ContentType: input.ContentType,
			SizeBytes:   input.SizeBytes,
			StorageKey:  input.StorageKey,
		})
	}
	if err := s.repo.InsertAttachments(ctx, attachments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachments")
	}
	return &dto.MessageResponse{SupportMessage: *message, Attachments: attachments}, nil
}

func isSupportStaff(role models.UserRole) bool {
	return role == models.RoleSupport || role == models.RoleAdmin
}
