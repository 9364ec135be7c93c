package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeKey normaliza uma chave de coluna: trim, minúsculas e remoção de
// espaços internos ("Phone Number" -> "phonenumber")
func NormalizeKey(key string) string {
	key = strings.TrimPrefix(key, "\uFEFF")
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(key)), "")
}

// RowsFromFile lê um CSV do disco e o converte em linhas normalizadas.
// O arquivo temporário é removido ao final, com ou sem sucesso.
func RowsFromFile(path string, bcryptCost int) ([]map[string]any, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(path)
	}()

	return Rows(f, bcryptCost)
}

// Rows converte um CSV em linhas prontas para importação. Chaves são
// normalizadas; valores recebem trim e as coerções por convenção:
// NULL/TRUE/FALSE viram os sentinelas tipados, UNDEFINED descarta a célula,
// a coluna password é sempre armazenada como hash bcrypt e a coluna email é
// normalizada para minúsculas. A sequência é materializada por completo antes
// do retorno.
func Rows(r io.Reader, bcryptCost int) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	// linhas com células a menos ou a mais não abortam a ingestão: a linha
	// ruim é isolada na criação, nunca no parse
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeKey(h)
	}

	rows := make([]map[string]any, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := make(map[string]any, len(keys))
		for i, key := range keys {
			if i >= len(record) || key == "" {
				continue
			}
			value, keep, err := transformValue(key, record[i], bcryptCost)
			if err != nil {
				return nil, err
			}
			if keep {
				row[key] = value
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func transformValue(key, raw string, bcryptCost int) (any, bool, error) {
	value := strings.TrimSpace(raw)

	if key == "password" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(value), bcryptCost)
		if err != nil {
			return nil, false, fmt.Errorf("error hashing password: %w", err)
		}
		return string(hashed), true, nil
	}

	switch value {
	case "NULL":
		return nil, true, nil
	case "FALSE":
		return false, true, nil
	case "TRUE":
		return true, true, nil
	case "UNDEFINED":
		return nil, false, nil
	}

	if key == "email" {
		value = strings.ToLower(value)
	}
	return value, true, nil
}
