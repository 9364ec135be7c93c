package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/handlers/dto"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

// FilesHandler lida com requisições HTTP relacionadas a arquivos
type FilesHandler struct {
	*CrudHandler[entities.File]
	filesService *services.FilesService
}

// NewFilesHandler cria um novo FilesHandler
func NewFilesHandler(filesService *services.FilesService) *FilesHandler {
	return &FilesHandler{
		CrudHandler:  NewCrudHandler[entities.File](filesService),
		filesService: filesService,
	}
}

// readUpload lê o conteúdo do campo multipart "file"
func readUpload(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, data, nil
}

func optionalForm(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}

// Upload recebe um arquivo multipart e o associa ao usuário informado
func (h *FilesHandler) Upload(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		_ = c.Error(domainerrors.BadRequest("userId is required", h.filesService.Name()))
		return
	}

	name, data, err := readUpload(c)
	if err != nil {
		_ = c.Error(domainerrors.BadRequest("File is required", h.filesService.Name()))
		return
	}

	file, err := h.filesService.Upload(c.Request.Context(), userID, name,
		data, optionalForm(c, "text"), optionalForm(c, "tags"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Files created successfully", file))
}

// Update atualiza metadados e, opcionalmente, o conteúdo do arquivo
func (h *FilesHandler) Update(c *gin.Context) {
	var req dto.UpdateFileRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(validationError(h.filesService.Name(), err))
		return
	}

	var data []byte
	if _, d, err := readUpload(c); err == nil {
		data = d
	}

	file, err := h.filesService.Update(c.Request.Context(), c.Param("id"), req.ToFields(), data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Files updated successfully", file))
}

// GetByUser lista os arquivos de um usuário
func (h *FilesHandler) GetByUser(c *gin.Context) {
	files, err := h.filesService.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Files retrieved successfully", files))
}
