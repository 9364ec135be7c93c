package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/query"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
)

// CrudService são as operações genéricas servidas pelo CrudHandler.
// Os serviços concretos satisfazem a interface por embutir o serviço genérico,
// sobrescrevendo o que precisar de regra própria.
type CrudService[T any] interface {
	Name() string
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	FindByQuery(ctx context.Context, q query.Query) (*query.Result[T], error)
	Delete(ctx context.Context, id string) (*T, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Import(ctx context.Context, path string) (*postgres.ImportResult, error)
	Export(ctx context.Context) (string, error)
}

// CrudHandler expõe o CRUD genérico de uma entidade sobre HTTP. Handlers não
// montam respostas de erro: registram o erro no contexto e o tratador central
// responde.
type CrudHandler[T any] struct {
	service CrudService[T]
}

// NewCrudHandler cria um handler CRUD para a entidade do serviço
func NewCrudHandler[T any](service CrudService[T]) *CrudHandler[T] {
	return &CrudHandler[T]{service: service}
}

// validationError empacota falhas de binding como erro 400 com os detalhes
// por campo
func validationError(resource string, err error) error {
	return &domainerrors.Error{
		Status:   http.StatusBadRequest,
		Message:  "Validation failed",
		Resource: resource,
		Details:  dto.ValidationDetails(err),
		Err:      err,
	}
}

// GetAll lista todos os registros
func (h *CrudHandler[T]) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%s retrieved successfully", h.service.Name()), items))
}

// GetByID retorna um registro por id
func (h *CrudHandler[T]) GetByID(c *gin.Context) {
	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%s retrieved successfully", h.service.Name()), item))
}

// FindByQuery executa a busca paginada. Corpo vazio vale como query padrão.
func (h *CrudHandler[T]) FindByQuery(c *gin.Context) {
	var req dto.FindByQueryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(validationError(h.service.Name(), err))
			return
		}
	}

	result, err := h.service.FindByQuery(c.Request.Context(), req.ToQuery())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%s retrieved successfully", h.service.Name()), result))
}

// Delete remove um registro por id e devolve o registro removido
func (h *CrudHandler[T]) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%s deleted successfully", h.service.Name()), deleted))
}

// DeleteMany remove um lote de registros
func (h *CrudHandler[T]) DeleteMany(c *gin.Context) {
	var req dto.DeleteManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validationError(h.service.Name(), err))
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(
		fmt.Sprintf("%s deleted successfully", h.service.Name()),
		gin.H{"deletedCount": deleted},
	))
}

// Import ingere um CSV enviado como multipart e cria os registros linha a
// linha. O resumo reporta criados, descartados e os erros por linha.
func (h *CrudHandler[T]) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(domainerrors.BadRequest("CSV file is required", h.service.Name()))
		return
	}

	tmp := filepath.Join(os.TempDir(), uuid.NewString()+".csv")
	if err := c.SaveUploadedFile(fileHeader, tmp); err != nil {
		_ = c.Error(domainerrors.Internal("Failed to save uploaded file", h.service.Name(), err))
		return
	}

	result, err := h.service.Import(c.Request.Context(), tmp)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Import completed", result))
}

// Export devolve todos os registros como um download CSV
func (h *CrudHandler[T]) Export(c *gin.Context) {
	csv, err := h.service.Export(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	filename := strings.ToLower(h.service.Name()) + ".csv"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
