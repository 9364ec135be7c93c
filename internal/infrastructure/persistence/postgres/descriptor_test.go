package postgres

import (
	"testing"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
)

func TestNewDescriptor(t *testing.T) {
	desc := NewDescriptor[entities.User]("Users",
		[]string{"Role", "Tenant"}, []string{"Password", "ResetToken"})

	t.Run("tabela vem do TableName da entidade", func(t *testing.T) {
		if desc.Table != "users" {
			t.Errorf("esperava tabela 'users', obteve '%s'", desc.Table)
		}
	})

	t.Run("nomes JSON, de campo e de cabeçalho CSV resolvem a mesma coluna", func(t *testing.T) {
		cases := []struct {
			in   string
			want string
		}{
			{"phoneNumber", "phone_number"},
			{"PhoneNumber", "phone_number"},
			{"Phone Number", "phone_number"},
			{"email", "email"},
			{"resetToken", "reset_token"},
			{"tenantId", "tenant_id"},
			{"createdAt", "created_at"},
		}
		for _, c := range cases {
			got, ok := desc.Column(c.in)
			if !ok {
				t.Errorf("esperava resolver %q, não resolveu", c.in)
				continue
			}
			if got != c.want {
				t.Errorf("Column(%q): esperava %q, obteve %q", c.in, c.want, got)
			}
		}
	})

	t.Run("relações e nomes desconhecidos não resolvem", func(t *testing.T) {
		for _, in := range []string{"role", "tenant", "nope", "id; DROP TABLE users"} {
			if column, ok := desc.Column(in); ok {
				t.Errorf("esperava %q não resolvido, obteve coluna %q", in, column)
			}
			if column, ok := desc.WritableColumn(in); ok {
				t.Errorf("esperava %q fora do mapa de escrita, obteve coluna %q", in, column)
			}
		}
	})
}

func TestNewDescriptorConversations(t *testing.T) {
	desc := NewDescriptor[entities.Conversation]("Conversations", nil, nil)

	if desc.Table != "conversations" {
		t.Errorf("esperava tabela 'conversations', obteve '%s'", desc.Table)
	}

	t.Run("colunas jsonb não são filtráveis", func(t *testing.T) {
		for _, in := range []string{"answers", "notes", "messages"} {
			if _, ok := desc.Column(in); ok {
				t.Errorf("esperava coluna jsonb %q fora do mapa de filtros", in)
			}
		}
	})

	t.Run("colunas jsonb são graváveis em updates e importações", func(t *testing.T) {
		for _, in := range []string{"answers", "notes", "messages"} {
			column, ok := desc.WritableColumn(in)
			if !ok {
				t.Errorf("esperava coluna jsonb %q gravável, não resolveu", in)
				continue
			}
			if column != in {
				t.Errorf("WritableColumn(%q): esperava %q, obteve %q", in, in, column)
			}
		}
	})

	if column, ok := desc.Column("category"); !ok || column != "category" {
		t.Errorf("esperava 'category' resolvido para 'category', obteve %q (ok=%v)", column, ok)
	}
}
