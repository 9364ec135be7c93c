package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/domain/query"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/csvutil"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
)

// Service implementa as operações comuns a toda entidade persistida.
// Serviços específicos embutem Service e sobrescrevem o que diverge.
type Service[T any] struct {
	repo       *postgres.Repository[T]
	bcryptCost int
	logger     ports.Logger
}

// NewService cria um serviço genérico sobre o repositório da entidade
func NewService[T any](repo *postgres.Repository[T], bcryptCost int, logger ports.Logger) *Service[T] {
	return &Service[T]{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// Name retorna o nome de exibição da entidade
func (s *Service[T]) Name() string {
	return s.repo.Name()
}

// GetAll retorna todos os registros
func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

// GetByID retorna um registro por id
func (s *Service[T]) GetByID(ctx context.Context, id string) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("%s not found", s.repo.Name()), s.repo.Name())
	}
	return item, nil
}

// FindByQuery executa a busca paginada
func (s *Service[T]) FindByQuery(ctx context.Context, q query.Query) (*query.Result[T], error) {
	return s.repo.FindByQuery(ctx, q)
}

// Create insere um registro
func (s *Service[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := s.repo.Create(ctx, entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.Conflict(fmt.Sprintf("%s already exists!", s.repo.Name()), s.repo.Name())
		}
		return nil, err
	}
	return entity, nil
}

// Update aplica uma atualização parcial sobre um registro existente
func (s *Service[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("%s does not exist!", s.repo.Name()), s.repo.Name())
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete remove um registro por id e retorna o registro removido
func (s *Service[T]) Delete(ctx context.Context, id string) (*T, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("%s does not exist!", s.repo.Name()), s.repo.Name())
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteMany remove um lote de registros por id
func (s *Service[T]) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domainerrors.BadRequest("Invalid or empty array of ids", s.repo.Name())
	}
	rows, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, domainerrors.BadRequest(
			fmt.Sprintf("No %s found to delete", strings.ToLower(s.repo.Name())), s.repo.Name())
	}
	return rows, nil
}

// Import ingere um CSV salvo em disco e cria os registros linha a linha.
// Linhas inválidas são descartadas sem abortar a importação.
func (s *Service[T]) Import(ctx context.Context, path string) (*postgres.ImportResult, error) {
	rows, err := csvutil.RowsFromFile(path, s.bcryptCost)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid CSV file", s.repo.Name())
	}

	result, err := s.repo.Import(ctx, rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("csv import finished",
		"entity", s.repo.Name(),
		"created", result.CreatedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

// Export serializa todos os registros em CSV, omitindo os campos sensíveis
// da entidade
func (s *Service[T]) Export(ctx context.Context) (string, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	csv, err := csvutil.Marshal(items, s.repo.Descriptor().OmitFields)
	if errors.Is(err, csvutil.ErrNoRows) {
		return "", domainerrors.NotFound(
			fmt.Sprintf("No %s found to export", strings.ToLower(s.repo.Name())), s.repo.Name())
	}
	if err != nil {
		return "", err
	}
	return csv, nil
}
