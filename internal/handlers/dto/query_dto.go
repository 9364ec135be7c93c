package dto

import (
	"github.com/rafabene/tenantbase-backend/internal/domain/query"
)

// FindByQueryRequest é o corpo da busca paginada. Todas as seções são
// opcionais: um corpo vazio equivale à primeira página com o tamanho padrão.
type FindByQueryRequest struct {
	Paginate *query.Paginate `json:"paginate"`
	OrderBy  []query.Order   `json:"orderBy"`
	Filter   []query.Filter  `json:"filter"`
}

// ToQuery converte o corpo na query abstrata do domínio
func (r FindByQueryRequest) ToQuery() query.Query {
	q := query.Query{OrderBy: r.OrderBy, Filter: r.Filter}
	if r.Paginate != nil {
		q.Paginate = *r.Paginate
	}
	return q
}
