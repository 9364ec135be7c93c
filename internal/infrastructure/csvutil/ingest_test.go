package csvutil

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Email", "email"},
		{" Phone Number ", "phonenumber"},
		{"RESET TOKEN", "resettoken"},
		{"name", "name"},
		{"\uFEFFEmail", "email"},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.in); got != c.want {
			t.Errorf("NormalizeKey(%q): esperava %q, obteve %q", c.in, c.want, got)
		}
	}
}

func TestRows(t *testing.T) {
	t.Run("chaves e valores são normalizados", func(t *testing.T) {
		csv := "Email, Phone Number \n A@B.com ,123\n"
		rows, err := Rows(strings.NewReader(csv), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("esperava 1 linha, obteve %d", len(rows))
		}
		if rows[0]["email"] != "a@b.com" {
			t.Errorf("esperava email 'a@b.com', obteve '%v'", rows[0]["email"])
		}
		if rows[0]["phonenumber"] != "123" {
			t.Errorf("esperava phonenumber '123', obteve '%v'", rows[0]["phonenumber"])
		}
	})

	t.Run("valores sentinela são convertidos", func(t *testing.T) {
		csv := "name,bio,active,old\nJo,NULL,TRUE,UNDEFINED\n"
		rows, err := Rows(strings.NewReader(csv), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		row := rows[0]
		if value, ok := row["bio"]; !ok || value != nil {
			t.Errorf("esperava bio nil presente, obteve %v (presente=%v)", value, ok)
		}
		if row["active"] != true {
			t.Errorf("esperava active true, obteve %v", row["active"])
		}
		if _, ok := row["old"]; ok {
			t.Error("esperava célula UNDEFINED descartada")
		}
	})

	t.Run("senha vira hash bcrypt verificável", func(t *testing.T) {
		csv := "email,password\na@b.com,secret123\n"
		rows, err := Rows(strings.NewReader(csv), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		hashed, ok := rows[0]["password"].(string)
		if !ok {
			t.Fatalf("esperava senha como string, obteve %T", rows[0]["password"])
		}
		if hashed == "secret123" {
			t.Fatal("esperava senha com hash, obteve texto puro")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("secret123")); err != nil {
			t.Errorf("esperava hash verificável da senha original: %v", err)
		}
	})

	t.Run("linha com células faltando não aborta a ingestão", func(t *testing.T) {
		csv := "email,name\na@b.com\nc@d.com,Carol\ne@f.com,Eve,extra\n"
		rows, err := Rows(strings.NewReader(csv), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("esperava sucesso com linhas irregulares, obteve erro: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("esperava 3 linhas, obteve %d", len(rows))
		}

		if _, ok := rows[0]["name"]; ok {
			t.Error("esperava célula ausente fora do mapa da linha curta")
		}
		if rows[0]["email"] != "a@b.com" {
			t.Errorf("esperava email 'a@b.com', obteve '%v'", rows[0]["email"])
		}
		if rows[1]["name"] != "Carol" {
			t.Errorf("esperava name 'Carol', obteve '%v'", rows[1]["name"])
		}
		if rows[2]["name"] != "Eve" {
			t.Errorf("esperava name 'Eve' com célula extra ignorada, obteve '%v'", rows[2]["name"])
		}
	})

	t.Run("csv vazio produz zero linhas", func(t *testing.T) {
		rows, err := Rows(strings.NewReader(""), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("esperava 0 linhas, obteve %d", len(rows))
		}
	})
}
