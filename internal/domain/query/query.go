package query

// Operadores de filtro suportados. A combinação entre filtros é sempre AND.
const (
	OpEquals   = "equals"
	OpContains = "contains"
)

// Direções de ordenação
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate define a página solicitada (page começa em 1)
type Paginate struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Order define um critério de ordenação por campo
type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Filter define um predicado de filtro por campo
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Query é a especificação abstrata de consulta traduzida pelo repositório
type Query struct {
	Paginate Paginate `json:"paginate"`
	OrderBy  []Order  `json:"orderBy"`
	Filter   []Filter `json:"filter"`
}

// Result é o envelope de paginação retornado por FindByQuery
type Result[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Normalize aplica os defaults de paginação e direção de ordenação.
// Uma query vazia nunca é erro: vira página 1 com o tamanho padrão.
func (q Query) Normalize() Query {
	if q.Paginate.Page < 1 {
		q.Paginate.Page = DefaultPage
	}
	if q.Paginate.PageSize < 1 {
		q.Paginate.PageSize = DefaultPageSize
	}
	if q.Paginate.PageSize > MaxPageSize {
		q.Paginate.PageSize = MaxPageSize
	}

	for i := range q.OrderBy {
		if q.OrderBy[i].Direction == "" {
			q.OrderBy[i].Direction = DirectionAsc
		}
	}

	for i := range q.Filter {
		if q.Filter[i].Operator == "" {
			q.Filter[i].Operator = OpEquals
		}
	}

	return q
}

// Offset calcula o deslocamento da página normalizada
func (q Query) Offset() int {
	return (q.Paginate.Page - 1) * q.Paginate.PageSize
}
