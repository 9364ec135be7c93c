package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/storage"
)

const filesResource = "Files"

// FilesService gerencia arquivos: o conteúdo vai para o disco, os metadados
// para o banco. Registro e artefato andam juntos: criação grava o disco antes
// do banco e desfaz o disco se o banco falhar.
type FilesService struct {
	*Service[entities.File]

	files   *postgres.Repository[entities.File]
	storage *storage.Disk
	logger  ports.Logger
}

// NewFilesService cria o serviço de arquivos
func NewFilesService(
	files *postgres.Repository[entities.File],
	disk *storage.Disk,
	bcryptCost int,
	logger ports.Logger,
) *FilesService {
	return &FilesService{
		Service: NewService(files, bcryptCost, logger),
		files:   files,
		storage: disk,
		logger:  logger,
	}
}

// Upload grava o conteúdo em disco e cria o registro. Se a criação do
// registro falhar, o artefato recém-gravado é removido.
func (s *FilesService) Upload(ctx context.Context, userID, originalName string, data []byte, text, tags *string) (*entities.File, error) {
	name, path, err := s.storage.Save(originalName, data)
	if err != nil {
		return nil, domainerrors.Internal("Failed to save file", filesResource, err)
	}

	file := &entities.File{
		UserID: userID,
		Name:   &name,
		Path:   &path,
		Text:   text,
		Tags:   tags,
	}
	if err := s.files.Create(ctx, file); err != nil {
		if removeErr := s.storage.Remove(name); removeErr != nil {
			s.logger.Warn("failed to remove orphan file from disk", "file", name, "error", removeErr)
		}
		return nil, err
	}

	s.logger.Info("file uploaded", "id", file.ID, "user", userID, "name", name)
	return file, nil
}

// Update atualiza metadados e, quando um novo conteúdo é enviado, substitui o
// artefato em disco mantendo o mesmo nome.
func (s *FilesService) Update(ctx context.Context, id string, fields map[string]any, data []byte) (*entities.File, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domainerrors.BadRequest("Files does not exist!", filesResource)
	}

	if len(data) > 0 && file.Name != nil {
		if err := s.storage.Replace(*file.Name, data); err != nil {
			return nil, domainerrors.Internal("Failed to replace file", filesResource, err)
		}
	}

	return s.files.Update(ctx, id, fields)
}

// Delete remove o registro e o artefato em disco, retornando o registro
// removido
func (s *FilesService) Delete(ctx context.Context, id string) (*entities.File, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domainerrors.BadRequest("Files does not exist!", filesResource)
	}

	if file.Name != nil {
		if err := s.storage.Remove(*file.Name); err != nil {
			s.logger.Warn("failed to remove file from disk", "file", *file.Name, "error", err)
		}
	}

	if _, err := s.files.Delete(ctx, id); err != nil {
		return nil, err
	}
	return file, nil
}

// GetByUser retorna os arquivos de um usuário
func (s *FilesService) GetByUser(ctx context.Context, userID string) ([]entities.File, error) {
	return s.files.GetByUser(ctx, userID)
}

// GetByID retorna um arquivo e incrementa o contador de visualizações
func (s *FilesService) GetByID(ctx context.Context, id string) (*entities.File, error) {
	file, err := s.Service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.files.Update(ctx, id, map[string]any{"views": gorm.Expr("views + 1")}); err != nil {
		s.logger.Warn("failed to increment file views", "id", id, "error", err)
	} else {
		file.Views++
	}
	return file, nil
}
