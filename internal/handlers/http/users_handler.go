package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

// UsersHandler lida com requisições HTTP relacionadas a usuários
type UsersHandler struct {
	*CrudHandler[entities.User]
	usersService *services.UsersService
}

// NewUsersHandler cria um novo UsersHandler
func NewUsersHandler(usersService *services.UsersService) *UsersHandler {
	return &UsersHandler{
		CrudHandler:  NewCrudHandler[entities.User](usersService),
		usersService: usersService,
	}
}

// Create cria um novo usuário
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(h.usersService.Name(), err))
		return
	}

	user, err := h.usersService.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Users created successfully", user))
}

// Update atualiza parcialmente um usuário
func (h *UsersHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(h.usersService.Name(), err))
		return
	}

	user, err := h.usersService.Update(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Users updated successfully", user))
}

// GetByEmail busca um usuário pelo e-mail
func (h *UsersHandler) GetByEmail(c *gin.Context) {
	user, err := h.usersService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Users retrieved successfully", user))
}
