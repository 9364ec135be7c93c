package csvutil

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ErrNoRows indica que não há nada para exportar
var ErrNoRows = errors.New("no rows to export")

type exportField struct {
	index int
	name  string
}

// Marshal serializa um slice de entidades em CSV. A ordem das colunas segue a
// ordem de declaração dos campos da struct; campos em omit (nomes JSON) e
// campos com tag json "-" ficam de fora. Valores aninhados (relações, jsonb)
// são serializados como JSON na célula.
func Marshal(items any, omit []string) (string, error) {
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice {
		return "", fmt.Errorf("csv export expects a slice, got %T", items)
	}
	if rv.Len() == 0 {
		return "", ErrNoRows
	}

	elemType := rv.Type().Elem()
	for elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return "", fmt.Errorf("csv export expects a slice of structs, got %s", elemType)
	}

	omitted := make(map[string]bool, len(omit))
	for _, o := range omit {
		omitted[NormalizeKey(o)] = true
	}

	fields := make([]exportField, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		f := elemType.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "-" || omitted[NormalizeKey(name)] {
			continue
		}
		fields = append(fields, exportField{index: i, name: name})
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.name
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i)
		for item.Kind() == reflect.Pointer {
			item = item.Elem()
		}

		record := make([]string, len(fields))
		for j, f := range fields {
			record[j] = cell(item.Field(f.index))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return f.Name
	}
	return name
}

func cell(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch value := v.Interface().(type) {
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	case datatypes.JSON:
		return string(value)
	case string:
		return value
	}

	switch v.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v.Interface())
	default:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	}
}
