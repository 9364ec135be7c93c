package postgres

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/rafabene/tenantbase-backend/internal/infrastructure/csvutil"
)

// Descriptor descreve uma entidade para o repositório genérico: nome de
// exibição usado nas mensagens, tabela, relações pré-carregadas nas leituras,
// campos omitidos em leituras e exportações e os mapas de colunas. O mapa de
// filtros é mais restrito que o de escrita: colunas jsonb podem ser escritas
// em updates e importações, mas não entram em filtros nem ordenação.
type Descriptor struct {
	Name       string
	Table      string
	Preloads   []string
	OmitFields []string

	filterable map[string]string
	writable   map[string]string
}

var (
	valuerType  = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// NewDescriptor monta o descriptor de uma entidade por reflexão. Colunas são
// derivadas pela naming strategy do GORM (ou pela tag column) e indexadas por
// chave normalizada, de modo que nomes JSON, nomes de campo e cabeçalhos CSV
// resolvam para a mesma coluna.
func NewDescriptor[T any](name string, preloads, omitFields []string) *Descriptor {
	var entity T
	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	naming := schema.NamingStrategy{}

	table := naming.TableName(t.Name())
	if tabler, ok := any(&entity).(schema.Tabler); ok {
		table = tabler.TableName()
	}

	filterable := make(map[string]string)
	writable := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		canFilter, canWrite := columnKinds(f)
		if !canWrite {
			continue
		}

		column := gormColumn(f)
		if column == "" {
			column = naming.ColumnName(table, f.Name)
		}

		keys := []string{csvutil.NormalizeKey(f.Name)}
		if jn := jsonFieldName(f); jn != "" && jn != "-" {
			keys = append(keys, csvutil.NormalizeKey(jn))
		}
		for _, key := range keys {
			writable[key] = column
			if canFilter {
				filterable[key] = column
			}
		}
	}

	return &Descriptor{
		Name:       name,
		Table:      table,
		Preloads:   preloads,
		OmitFields: omitFields,
		filterable: filterable,
		writable:   writable,
	}
}

// Column resolve um nome vindo do cliente para a coluna correspondente em
// filtros e ordenação. Nomes desconhecidos retornam false, o que impede
// interpolação de identificadores arbitrários nas cláusulas.
func (d *Descriptor) Column(field string) (string, bool) {
	column, ok := d.filterable[csvutil.NormalizeKey(field)]
	return column, ok
}

// WritableColumn resolve um nome vindo do cliente para a coluna
// correspondente em updates e importações. Inclui as colunas jsonb, fora do
// mapa de filtros.
func (d *Descriptor) WritableColumn(field string) (string, bool) {
	column, ok := d.writable[csvutil.NormalizeKey(field)]
	return column, ok
}

// columnKinds classifica um campo: relações ficam fora de ambos os mapas;
// colunas jsonb ([]byte ou tipos com Valuer/Scanner) são graváveis mas não
// filtráveis; o restante são colunas escalares plenas.
func columnKinds(f reflect.StructField) (filterable, writable bool) {
	if tag := f.Tag.Get("gorm"); tag == "-" {
		return false, false
	}

	t := f.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) || t == reflect.TypeOf(gorm.DeletedAt{}) {
			return true, true
		}
		return false, false
	case reflect.Slice, reflect.Map:
		if isSQLConvertible(t) {
			return false, true
		}
		return false, false
	default:
		return true, true
	}
}

// isSQLConvertible informa se o tipo vai e volta do banco como valor único
// (datatypes.JSON, listas embutidas com Valuer/Scanner), em oposição a uma
// relação carregada por preload
func isSQLConvertible(t reflect.Type) bool {
	if t.Implements(valuerType) || reflect.PointerTo(t).Implements(valuerType) {
		return true
	}
	if t.Implements(scannerType) || reflect.PointerTo(t).Implements(scannerType) {
		return true
	}
	// []byte puro também é coluna
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func gormColumn(f reflect.StructField) string {
	for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
		if column, ok := strings.CutPrefix(part, "column:"); ok {
			return column
		}
	}
	return ""
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	return strings.Split(tag, ",")[0]
}
