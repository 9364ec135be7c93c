package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

// ConversationsHandler lida com requisições HTTP relacionadas a conversas
type ConversationsHandler struct {
	*CrudHandler[entities.Conversation]
	conversationsService *services.ConversationsService
}

// NewConversationsHandler cria um novo ConversationsHandler
func NewConversationsHandler(conversationsService *services.ConversationsService) *ConversationsHandler {
	return &ConversationsHandler{
		CrudHandler:          NewCrudHandler[entities.Conversation](conversationsService),
		conversationsService: conversationsService,
	}
}

// Create cria uma nova conversa
func (h *ConversationsHandler) Create(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(h.conversationsService.Name(), err))
		return
	}

	conversation, err := h.conversationsService.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Conversations created successfully", conversation))
}

// Update atualiza parcialmente uma conversa
func (h *ConversationsHandler) Update(c *gin.Context) {
	var req dto.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(h.conversationsService.Name(), err))
		return
	}

	conversation, err := h.conversationsService.Update(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Conversations updated successfully", conversation))
}

// GetByUser lista as conversas de um usuário
func (h *ConversationsHandler) GetByUser(c *gin.Context) {
	conversations, err := h.conversationsService.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Conversations retrieved successfully", conversations))
}
