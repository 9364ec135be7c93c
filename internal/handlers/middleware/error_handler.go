package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/config"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
)

// ErrorHandler é o tratador central de erros: handlers apenas registram o
// erro via c.Error e a resposta é montada aqui. Em produção, erros 5xx não
// expõem a mensagem interna. Quando o log em arquivo está desabilitado, cada
// erro vira um registro em error_logs (melhor esforço: falha na gravação não
// afeta a resposta).
func ErrorHandler(
	cfg *config.Config,
	errorLogs *postgres.Repository[entities.ErrorLog],
	logger ports.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		err := last.Err

		status := domainerrors.StatusOf(err)
		message := err.Error()
		name := "InternalServerError"
		var details any

		if e, ok := domainerrors.AsError(err); ok {
			message = e.Message
			name = e.Name()
			details = e.Details
		}
		if status >= http.StatusInternalServerError && cfg.IsProduction() {
			message = "Internal server error"
		}

		// stack de goroutine apenas nos 5xx: nos erros de cliente a causa já
		// está na mensagem e o ponto de captura não agrega nada
		stack := ""
		if status >= http.StatusInternalServerError {
			stack = string(debug.Stack())
		}

		loggedUser := c.GetString(LoggedUserKey)

		logger.Error("request failed",
			"method", c.Request.Method,
			"url", c.Request.URL.Path,
			"status", status,
			"loggedUser", loggedUser,
			"error", err,
		)

		if !cfg.Logging.FileLogs {
			persistErrorLog(c.Request.Context(), errorLogs, logger, entities.ErrorLog{
				Status:     fmt.Sprintf("%d", status),
				Message:    message,
				Method:     c.Request.Method,
				URL:        c.Request.URL.String(),
				LoggedUser: loggedUser,
				Name:       name,
				Stack:      stack,
				Details:    marshalDetails(details),
			})
		}

		var data any
		if !cfg.IsProduction() {
			data = gin.H{
				"name":       name,
				"method":     c.Request.Method,
				"url":        c.Request.URL.String(),
				"loggedUser": loggedUser,
				"details":    details,
				"stack":      stack,
			}
		}

		c.JSON(status, dto.Failure(status, message, data))
	}
}

// Recover transforma um panic em resposta 500 no envelope padrão
func Recover(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"method", c.Request.Method,
					"url", c.Request.URL.Path,
					"panic", r,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.Failure(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}

func persistErrorLog(
	ctx context.Context,
	errorLogs *postgres.Repository[entities.ErrorLog],
	logger ports.Logger,
	record entities.ErrorLog,
) {
	if err := errorLogs.Create(ctx, &record); err != nil {
		logger.Warn("failed to persist error log", "error", err)
	}
}

func marshalDetails(details any) datatypes.JSON {
	if details == nil {
		return nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
