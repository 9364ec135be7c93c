package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

// HealthHandler lida com requisições de health check e manutenção
type HealthHandler struct {
	healthService *services.HealthService
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Check reporta o estado da aplicação e de suas dependências
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	c.JSON(http.StatusOK, dto.OK("Health check", status))
}

// ClearCache limpa o cache de respostas da API
func (h *HealthHandler) ClearCache(c *gin.Context) {
	removed := h.healthService.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, dto.OK("Cache cleared successfully", gin.H{"deletedKeys": removed}))
}

// ClearLogs apaga os arquivos de log da aplicação
func (h *HealthHandler) ClearLogs(c *gin.Context) {
	removed, err := h.healthService.ClearLogs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Log files cleared successfully", gin.H{"deletedFiles": removed}))
}
