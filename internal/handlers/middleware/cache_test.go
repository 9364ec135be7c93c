package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/infrastructure/cache"
)

func TestResponseCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("GET 200 é servido do cache na segunda chamada", func(t *testing.T) {
		hits := 0
		router := gin.New()
		router.Use(ResponseCache(cache.NewMemory(), time.Minute))
		router.GET("/items", func(c *gin.Context) {
			hits++
			c.JSON(http.StatusOK, gin.H{"hits": hits})
		})

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("esperava status 200, obteve %d", w.Code)
			}
			if body := w.Body.String(); body != `{"hits":1}` {
				t.Errorf("esperava corpo cacheado, obteve %s", body)
			}
		}
		if hits != 1 {
			t.Errorf("esperava 1 execução do handler, obteve %d", hits)
		}
	})

	t.Run("POST não passa pelo cache", func(t *testing.T) {
		hits := 0
		router := gin.New()
		router.Use(ResponseCache(cache.NewMemory(), time.Minute))
		router.POST("/items", func(c *gin.Context) {
			hits++
			c.JSON(http.StatusOK, gin.H{"hits": hits})
		})

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("esperava status 200, obteve %d", w.Code)
			}
		}
		if hits != 2 {
			t.Errorf("esperava 2 execuções do handler, obteve %d", hits)
		}
	})

	t.Run("resposta de erro não entra no cache", func(t *testing.T) {
		hits := 0
		router := gin.New()
		router.Use(ResponseCache(cache.NewMemory(), time.Minute))
		router.GET("/broken", func(c *gin.Context) {
			hits++
			c.JSON(http.StatusBadRequest, gin.H{"hits": hits})
		})

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("esperava status 400, obteve %d", w.Code)
			}
		}
		if hits != 2 {
			t.Errorf("esperava 2 execuções do handler, obteve %d", hits)
		}
	})
}
