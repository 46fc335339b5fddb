package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/models"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
	"github.com/edulane/tutoring-api/pkg/response"
)

type supportService interface {
	Create(ctx context.Context, requester *models.JWTClaims, req dto.CreateTicketRequest) (*dto.TicketResponse, error)
	List(ctx context.Context, requester *models.JWTClaims, filter models.SupportTicketFilter) ([]models.SupportTicket, *models.Pagination, error)
	Get(ctx context.Context, requester *models.JWTClaims, ticketID string) (*dto.TicketResponse, error)
	Reply(ctx context.Context, requester *models.JWTClaims, ticketID string, req dto.ReplyRequest) (*dto.MessageResponse, error)
	Transition(ctx context.Context, requester *models.JWTClaims, ticketID string, req dto.TransitionRequest) (*models.SupportTicket, error)
	ResolveAttachment(ctx context.Context, requester *models.JWTClaims, token string) (*models.SupportAttachment, error)
}

// SupportHandler wires the helpdesk service to HTTP endpoints.
type SupportHandler struct {
	service supportService
}

// NewSupportHandler constructs the handler.
func NewSupportHandler(service supportService) *SupportHandler {
	return &SupportHandler{service: service}
}

// Create godoc
// @Summary Open a support ticket
// @Tags Support
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Ticket payload"
// @Success 201 {object} response.Envelope
// @Router /support/tickets [post]
func (h *SupportHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	ticket, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ticket)
}

// List godoc
// @Summary List support tickets
// @Tags Support
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /support/tickets [get]
func (h *SupportHandler) List(c *gin.Context) {
	filter := models.SupportTicketFilter{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", 0),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.TicketStatus(raw)
		if !status.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown ticket status"))
			return
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority := models.TicketPriority(raw)
		if !priority.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown ticket priority"))
			return
		}
		filter.Priority = &priority
	}

	tickets, pagination, err := h.service.List(c.Request.Context(), claimsFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tickets, pagination)
}

// Get godoc
// @Summary Ticket detail with full thread
// @Tags Support
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Envelope
// @Router /support/tickets/{id} [get]
func (h *SupportHandler) Get(c *gin.Context) {
	ticket, err := h.service.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket, nil)
}

// Reply godoc
// @Summary Reply on a ticket thread
// @Tags Support
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body dto.ReplyRequest true "Reply payload"
// @Success 201 {object} response.Envelope
// @Router /support/tickets/{id}/messages [post]
func (h *SupportHandler) Reply(c *gin.Context) {
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	message, err := h.service.Reply(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// Transition godoc
// @Summary Move a ticket through its lifecycle
// @Tags Support
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body dto.TransitionRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /support/tickets/{id}/status [patch]
func (h *SupportHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	ticket, err := h.service.Transition(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket, nil)
}

// DownloadAttachment godoc
// @Summary Resolve a signed attachment download token
// @Description The token embedded in an attachment's download_url is the credential; no JWT is required.
// @Tags Support
// @Produce json
// @Param token path string true "Signed download token"
// @Success 200 {object} response.Envelope
// @Router /support/attachments/{token} [get]
func (h *SupportHandler) DownloadAttachment(c *gin.Context) {
	attachment, err := h.service.ResolveAttachment(c.Request.Context(), claimsFromContext(c), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachment, nil)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
