package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/infrastructure/token"
)

func setupAuthRouter(t *testing.T, tokens *token.Service) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(tokens))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"loggedUser": c.GetString(LoggedUserKey)})
	})
	return router
}

func TestAuth(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	router := setupAuthRouter(t, tokens)

	t.Run("sem header é 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava status 401, obteve %d", w.Code)
		}
	})

	t.Run("token inválido é 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("esperava status 403, obteve %d", w.Code)
		}
	})

	t.Run("token de reset não abre sessão", func(t *testing.T) {
		tk, err := tokens.IssueResetToken(map[string]any{"sub": "user-1", "email": "a@b.com"})
		if err != nil {
			t.Fatalf("esperava sucesso na emissão, obteve erro: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("esperava status 403, obteve %d", w.Code)
		}
	})

	t.Run("token válido passa e propaga o loggedUser", func(t *testing.T) {
		tk, err := tokens.Issue(map[string]any{"sub": "user-1", "email": "a@b.com"})
		if err != nil {
			t.Fatalf("esperava sucesso na emissão, obteve erro: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava status 200, obteve %d", w.Code)
		}
		if body := w.Body.String(); !strings.Contains(body, "a@b.com") {
			t.Errorf("esperava loggedUser 'a@b.com' na resposta, obteve %s", body)
		}
	})
}
