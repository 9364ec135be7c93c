package query

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("query vazia recebe os defaults", func(t *testing.T) {
		q := Query{}.Normalize()

		if q.Paginate.Page != DefaultPage {
			t.Errorf("esperava página %d, obteve %d", DefaultPage, q.Paginate.Page)
		}
		if q.Paginate.PageSize != DefaultPageSize {
			t.Errorf("esperava tamanho %d, obteve %d", DefaultPageSize, q.Paginate.PageSize)
		}
	})

	t.Run("tamanho de página é limitado ao máximo", func(t *testing.T) {
		q := Query{Paginate: Paginate{Page: 1, PageSize: 10000}}.Normalize()

		if q.Paginate.PageSize != MaxPageSize {
			t.Errorf("esperava tamanho %d, obteve %d", MaxPageSize, q.Paginate.PageSize)
		}
	})

	t.Run("direção e operador vazios recebem os defaults", func(t *testing.T) {
		q := Query{
			OrderBy: []Order{{Field: "name"}},
			Filter:  []Filter{{Field: "email", Value: "a@b.com"}},
		}.Normalize()

		if q.OrderBy[0].Direction != DirectionAsc {
			t.Errorf("esperava direção '%s', obteve '%s'", DirectionAsc, q.OrderBy[0].Direction)
		}
		if q.Filter[0].Operator != OpEquals {
			t.Errorf("esperava operador '%s', obteve '%s'", OpEquals, q.Filter[0].Operator)
		}
	})
}

func TestOffset(t *testing.T) {
	q := Query{Paginate: Paginate{Page: 3, PageSize: 25}}.Normalize()
	if got := q.Offset(); got != 50 {
		t.Errorf("esperava offset 50, obteve %d", got)
	}

	if got := (Query{}.Normalize()).Offset(); got != 0 {
		t.Errorf("esperava offset 0 para query padrão, obteve %d", got)
	}
}
