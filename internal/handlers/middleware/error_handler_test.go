package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/config"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...any)        {}
func (noopLogger) Error(string, ...any)       {}
func (noopLogger) Debug(string, ...any)       {}
func (noopLogger) Warn(string, ...any)        {}
func (l noopLogger) With(...any) ports.Logger { return l }

func setupErrorRouter(t *testing.T, cfg *config.Config, fail func(*gin.Context)) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// FileLogs ligado nos testes: sem persistência de ErrorLog, sem banco
	router.Use(ErrorHandler(cfg, nil, noopLogger{}))
	router.GET("/fail", fail)
	return router
}

func doFail(router *gin.Engine, t *testing.T) (int, dto.Response) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	router.ServeHTTP(w, req)

	var body dto.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("esperava envelope JSON, obteve erro: %v (%s)", err, w.Body.String())
	}
	return w.Code, body
}

func TestErrorHandler(t *testing.T) {
	devCfg := &config.Config{Env: "development", Logging: config.LoggingConfig{FileLogs: true}}
	prodCfg := &config.Config{Env: "production", Logging: config.LoggingConfig{FileLogs: true}}

	t.Run("erro de domínio mantém status e mensagem", func(t *testing.T) {
		router := setupErrorRouter(t, devCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.BadRequest("Users does not exist!", "Users"))
		})

		code, body := doFail(router, t)
		if code != http.StatusBadRequest {
			t.Errorf("esperava status 400, obteve %d", code)
		}
		if body.Success {
			t.Error("esperava success falso")
		}
		if body.StatusCode != http.StatusBadRequest {
			t.Errorf("esperava statusCode 400, obteve %d", body.StatusCode)
		}
		if body.Message != "Users does not exist!" {
			t.Errorf("mensagem inesperada: %q", body.Message)
		}
	})

	t.Run("erro não tipado vira 500", func(t *testing.T) {
		router := setupErrorRouter(t, devCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.Internal("Failed to hash password", "Users", nil))
		})

		code, body := doFail(router, t)
		if code != http.StatusInternalServerError {
			t.Errorf("esperava status 500, obteve %d", code)
		}
		if body.Data == nil {
			t.Error("esperava detalhes do erro fora de produção")
		}
	})

	t.Run("500 carrega o stack de goroutine, não a mensagem do erro", func(t *testing.T) {
		router := setupErrorRouter(t, devCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.Internal("Failed to hash password", "Users", nil))
		})

		_, body := doFail(router, t)
		data, ok := body.Data.(map[string]any)
		if !ok {
			t.Fatalf("esperava mapa de detalhes, obteve %T", body.Data)
		}
		stack, _ := data["stack"].(string)
		if !strings.Contains(stack, "goroutine") {
			t.Errorf("esperava stack de goroutine, obteve %q", stack)
		}
	})

	t.Run("erro de cliente não carrega stack", func(t *testing.T) {
		router := setupErrorRouter(t, devCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.BadRequest("Users does not exist!", "Users"))
		})

		_, body := doFail(router, t)
		data, ok := body.Data.(map[string]any)
		if !ok {
			t.Fatalf("esperava mapa de detalhes, obteve %T", body.Data)
		}
		if stack, _ := data["stack"].(string); stack != "" {
			t.Errorf("esperava stack vazio em erro 4xx, obteve %q", stack)
		}
	})

	t.Run("produção esconde a mensagem interna dos 500", func(t *testing.T) {
		router := setupErrorRouter(t, prodCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.Internal("database exploded", "Users", nil))
		})

		code, body := doFail(router, t)
		if code != http.StatusInternalServerError {
			t.Errorf("esperava status 500, obteve %d", code)
		}
		if body.Message != "Internal server error" {
			t.Errorf("esperava mensagem genérica, obteve %q", body.Message)
		}
		if body.Data != nil {
			t.Error("esperava resposta sem detalhes em produção")
		}
	})

	t.Run("produção mantém a mensagem dos erros de cliente", func(t *testing.T) {
		router := setupErrorRouter(t, prodCfg, func(c *gin.Context) {
			_ = c.Error(domainerrors.Conflict("Users already exists!", "Users"))
		})

		code, body := doFail(router, t)
		if code != http.StatusConflict {
			t.Errorf("esperava status 409, obteve %d", code)
		}
		if body.Message != "Users already exists!" {
			t.Errorf("mensagem inesperada: %q", body.Message)
		}
	})

	t.Run("sem erro a resposta do handler passa intocada", func(t *testing.T) {
		router := setupErrorRouter(t, devCfg, func(c *gin.Context) {
			c.JSON(http.StatusOK, dto.OK("ok", nil))
		})

		code, body := doFail(router, t)
		if code != http.StatusOK {
			t.Errorf("esperava status 200, obteve %d", code)
		}
		if !body.Success {
			t.Error("esperava success verdadeiro")
		}
	})
}
