package csvutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type exportItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Name      *string   `json:"name"`
	Views     int       `json:"views"`
	Internal  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func TestMarshal(t *testing.T) {
	t.Run("cabeçalho segue a ordem de declaração sem os campos omitidos", func(t *testing.T) {
		name := "Jo"
		items := []exportItem{{
			ID:        "1",
			Email:     "a@b.com",
			Password:  "hash",
			Name:      &name,
			Views:     3,
			Internal:  "x",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}}

		out, err := Marshal(items, []string{"password"})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(out), "\n")
		if lines[0] != "id,email,name,views,createdAt" {
			t.Errorf("cabeçalho inesperado: %q", lines[0])
		}
		if lines[1] != "1,a@b.com,Jo,3,2026-01-02T03:04:05Z" {
			t.Errorf("linha inesperada: %q", lines[1])
		}
	})

	t.Run("ponteiro nil vira célula vazia", func(t *testing.T) {
		items := []exportItem{{ID: "1", Email: "a@b.com"}}
		out, err := Marshal(items, nil)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(out), "\n")
		if !strings.Contains(lines[1], "a@b.com,,") {
			t.Errorf("esperava célula vazia para name nil, obteve %q", lines[1])
		}
	})

	t.Run("slice vazio retorna ErrNoRows", func(t *testing.T) {
		_, err := Marshal([]exportItem{}, nil)
		if !errors.Is(err, ErrNoRows) {
			t.Errorf("esperava ErrNoRows, obteve %v", err)
		}
	})

	t.Run("valor que não é slice é erro", func(t *testing.T) {
		if _, err := Marshal("nope", nil); err == nil {
			t.Error("esperava erro para valor que não é slice")
		}
	})
}
