package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

const authResource = "Auth"

// AuthHandler lida com requisições HTTP de autenticação
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login autentica por e-mail e senha e devolve token e usuário
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(authResource, err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Login successful", result))
}

// Register cria um usuário e devolve uma sessão autenticada
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(authResource, err))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.ToEntity())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Users created successfully", result))
}

// ExtendToken renova a expiração de um token válido
func (h *AuthHandler) ExtendToken(c *gin.Context) {
	var req dto.ExtendTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(authResource, err))
		return
	}

	tk, err := h.authService.ExtendToken(c.Request.Context(), req.Token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Token extended successfully", gin.H{"token": tk}))
}

// Logout encerra a sessão do lado do cliente. Tokens são stateless: o
// endpoint apenas confirma a operação ecoando o token recebido.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.ExtendTokenRequest
	_ = c.ShouldBindJSON(&req)

	c.JSON(http.StatusOK, dto.OK("Logout successful", gin.H{"token": req.Token}))
}

// ForgotPassword inicia o fluxo de reset de senha por e-mail
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(authResource, err))
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Reset link sent. Check your inbox", nil))
}

// ResetPassword troca a senha a partir de um token de reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(authResource, err))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Password reset successful", nil))
}
