package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/domain/query"
)

// ImportError registra o motivo pelo qual uma linha do CSV foi descartada
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resume uma importação: linhas criadas, linhas descartadas e os
// erros linha a linha.
type ImportResult struct {
	CreatedCount int           `json:"createdCount"`
	SkippedCount int           `json:"skippedCount"`
	Errors       []ImportError `json:"errors"`
}

// Repository é o repositório genérico sobre GORM. Toda entidade persistida
// ganha o CRUD completo parametrizando o tipo e o Descriptor.
type Repository[T any] struct {
	db     *gorm.DB
	desc   *Descriptor
	logger ports.Logger
}

// NewRepository cria um repositório para a entidade descrita
func NewRepository[T any](db *gorm.DB, desc *Descriptor, logger ports.Logger) *Repository[T] {
	return &Repository[T]{db: db, desc: desc, logger: logger}
}

// Name retorna o nome de exibição da entidade
func (r *Repository[T]) Name() string {
	return r.desc.Name
}

// Descriptor retorna o descriptor da entidade
func (r *Repository[T]) Descriptor() *Descriptor {
	return r.desc
}

// reading aplica preloads e omissões padrão das leituras
func (r *Repository[T]) reading(ctx context.Context) *gorm.DB {
	session := dbFrom(ctx, r.db)
	for _, preload := range r.desc.Preloads {
		session = session.Preload(preload)
	}
	if len(r.desc.OmitFields) > 0 {
		session = session.Omit(r.desc.OmitFields...)
	}
	return session
}

// GetAll retorna todos os registros da entidade
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.reading(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.desc.Table, err)
	}
	return items, nil
}

// GetByID busca um registro por id. Registro ausente retorna nil sem erro.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.reading(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by id: %w", r.desc.Table, err)
	}
	return &item, nil
}

// GetByEmail busca um registro pelo e-mail sem omitir campos sensíveis: é a
// leitura usada pela autenticação, que precisa do hash da senha.
func (r *Repository[T]) GetByEmail(ctx context.Context, email string) (*T, error) {
	session := dbFrom(ctx, r.db)
	for _, preload := range r.desc.Preloads {
		session = session.Preload(preload)
	}

	var item T
	err := session.First(&item, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by email: %w", r.desc.Table, err)
	}
	return &item, nil
}

// GetByField busca um registro por um campo arbitrário. Campos sensíveis não
// são omitidos; o método atende fluxos internos como o de reset de senha.
func (r *Repository[T]) GetByField(ctx context.Context, field string, value any) (*T, error) {
	column, ok := r.desc.Column(field)
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("Invalid field: %s", field), r.desc.Name)
	}

	session := dbFrom(ctx, r.db)
	for _, preload := range r.desc.Preloads {
		session = session.Preload(preload)
	}

	var item T
	err := session.First(&item, fmt.Sprintf("%s = ?", column), value).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by %s: %w", r.desc.Table, column, err)
	}
	return &item, nil
}

// GetByUser retorna os registros pertencentes a um usuário
func (r *Repository[T]) GetByUser(ctx context.Context, userID string) ([]T, error) {
	var items []T
	if err := r.reading(ctx).Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s by user: %w", r.desc.Table, err)
	}
	return items, nil
}

// FindByQuery executa a busca paginada com ordenação e filtros dinâmicos.
// Campos desconhecidos em filtros ou ordenação retornam 400; a contagem total
// considera os filtros, não a página.
func (r *Repository[T]) FindByQuery(ctx context.Context, q query.Query) (*query.Result[T], error) {
	q = q.Normalize()

	// sessões separadas para Count e Find: um statement finalizado não é
	// reutilizável no GORM
	applyFilters := func(session *gorm.DB) (*gorm.DB, error) {
		for _, f := range q.Filter {
			column, ok := r.desc.Column(f.Field)
			if !ok {
				return nil, domainerrors.BadRequest(fmt.Sprintf("Invalid filter field: %s", f.Field), r.desc.Name)
			}
			switch f.Operator {
			case query.OpContains:
				session = session.Where(fmt.Sprintf("%s ILIKE ?", column), fmt.Sprintf("%%%v%%", f.Value))
			default:
				session = session.Where(fmt.Sprintf("%s = ?", column), f.Value)
			}
		}
		return session, nil
	}

	counting, err := applyFilters(dbFrom(ctx, r.db).Model(new(T)))
	if err != nil {
		return nil, err
	}
	var total int64
	if err := counting.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.desc.Table, err)
	}

	session, err := applyFilters(dbFrom(ctx, r.db).Model(new(T)))
	if err != nil {
		return nil, err
	}
	for _, preload := range r.desc.Preloads {
		session = session.Preload(preload)
	}
	if len(r.desc.OmitFields) > 0 {
		session = session.Omit(r.desc.OmitFields...)
	}

	for _, order := range q.OrderBy {
		column, ok := r.desc.Column(order.Field)
		if !ok {
			return nil, domainerrors.BadRequest(fmt.Sprintf("Invalid sort field: %s", order.Field), r.desc.Name)
		}
		session = session.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   order.Direction == query.DirectionDesc,
		})
	}

	var items []T
	err = session.Offset(q.Offset()).Limit(q.Paginate.PageSize).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.desc.Table, err)
	}

	return &query.Result[T]{
		Items:    items,
		Total:    total,
		Page:     q.Paginate.Page,
		PageSize: q.Paginate.PageSize,
	}, nil
}

// Create insere um registro
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := dbFrom(ctx, r.db).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.desc.Table, err)
	}
	return nil
}

// Update aplica uma atualização parcial e retorna o registro atualizado.
// As chaves do mapa são nomes vindos do cliente, resolvidos para colunas.
func (r *Repository[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	updates := make(map[string]any, len(fields))
	for field, value := range fields {
		column, ok := r.desc.WritableColumn(field)
		if !ok {
			return nil, domainerrors.BadRequest(fmt.Sprintf("Invalid field: %s", field), r.desc.Name)
		}
		updates[column] = value
	}

	if len(updates) > 0 {
		err := dbFrom(ctx, r.db).Model(new(T)).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", r.desc.Table, err)
		}
	}

	return r.GetByID(ctx, id)
}

// Delete remove um registro por id e informa quantas linhas foram afetadas
func (r *Repository[T]) Delete(ctx context.Context, id string) (int64, error) {
	result := dbFrom(ctx, r.db).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", r.desc.Table, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteMany remove um lote de registros por id
func (r *Repository[T]) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	result := dbFrom(ctx, r.db).Delete(new(T), "id IN ?", ids)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", r.desc.Table, result.Error)
	}
	return result.RowsAffected, nil
}

// Import insere linhas vindas de um CSV uma a uma. Linha que falha (chave
// desconhecida, duplicada, constraint violada) é descartada e registrada sem
// interromper as demais.
func (r *Repository[T]) Import(ctx context.Context, rows []map[string]any) (*ImportResult, error) {
	session := dbFrom(ctx, r.db)
	result := &ImportResult{Errors: []ImportError{}}

	for i, row := range rows {
		record, err := r.importRecord(row)
		if err != nil {
			result.SkippedCount++
			result.Errors = append(result.Errors, ImportError{Row: i + 2, Message: err.Error()})
			continue
		}

		if err := session.Table(r.desc.Table).Create(record).Error; err != nil {
			r.logger.Warn("import row skipped", "table", r.desc.Table, "row", i+2, "error", err)
			result.SkippedCount++
			result.Errors = append(result.Errors, ImportError{Row: i + 2, Message: err.Error()})
			continue
		}
		result.CreatedCount++
	}

	return result, nil
}

// importRecord resolve as chaves da linha para colunas e completa id e
// timestamps, já que inserções via mapa não passam pelos hooks do GORM.
func (r *Repository[T]) importRecord(row map[string]any) (map[string]any, error) {
	record := make(map[string]any, len(row)+3)
	for key, value := range row {
		column, ok := r.desc.WritableColumn(key)
		if !ok {
			return nil, fmt.Errorf("unknown column: %s", key)
		}
		record[column] = value
	}

	if _, ok := record["id"]; !ok {
		record["id"] = uuid.NewString()
	}
	now := time.Now().UTC()
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = now
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = now
	}

	return record, nil
}
