package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/token"
)

// LoggedUserKey é a chave do contexto gin com o e-mail do usuário autenticado
const LoggedUserKey = "loggedUser"

// Auth exige um bearer token válido. Token ausente é 401; token inválido,
// expirado ou de reset de senha é 403.
func Auth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Failure(http.StatusUnauthorized, "Authorization token required", nil))
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil || token.IsResetToken(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.Failure(http.StatusForbidden, "Invalid or expired token", nil))
			return
		}

		if email, ok := claims["email"].(string); ok {
			c.Set(LoggedUserKey, email)
		}
		c.Next()
	}
}
