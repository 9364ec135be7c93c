package token

import (
	"testing"
	"time"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	t.Run("claims sobrevivem ao round-trip", func(t *testing.T) {
		tk, err := svc.Issue(map[string]any{"sub": "user-1", "email": "a@b.com"})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		claims, err := svc.Verify(tk)
		if err != nil {
			t.Fatalf("esperava token válido, obteve erro: %v", err)
		}
		if claims["sub"] != "user-1" {
			t.Errorf("esperava sub 'user-1', obteve '%v'", claims["sub"])
		}
		if claims["email"] != "a@b.com" {
			t.Errorf("esperava email 'a@b.com', obteve '%v'", claims["email"])
		}
	})

	t.Run("exp e iat do chamador são descartados", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Unix()
		tk, err := svc.Issue(map[string]any{"sub": "user-1", "exp": past, "iat": past, "nbf": past})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		claims, err := svc.Verify(tk)
		if err != nil {
			t.Fatalf("esperava token válido mesmo com exp antigo nos claims, obteve: %v", err)
		}

		exp, ok := claims["exp"].(float64)
		if !ok {
			t.Fatalf("esperava claim exp numérico, obteve %T", claims["exp"])
		}
		if int64(exp) <= time.Now().Unix() {
			t.Errorf("esperava exp no futuro, obteve %v", int64(exp))
		}
	})

	t.Run("token expirado é rejeitado", func(t *testing.T) {
		expired := NewService("test-secret", -time.Minute)
		tk, err := expired.Issue(map[string]any{"sub": "user-1"})
		if err != nil {
			t.Fatalf("esperava sucesso na emissão, obteve erro: %v", err)
		}

		if _, err := svc.Verify(tk); err == nil {
			t.Fatal("esperava erro para token expirado")
		}
	})

	t.Run("assinatura de outro segredo é rejeitada com 403", func(t *testing.T) {
		other := NewService("other-secret", time.Hour)
		tk, err := other.Issue(map[string]any{"sub": "user-1"})
		if err != nil {
			t.Fatalf("esperava sucesso na emissão, obteve erro: %v", err)
		}

		_, err = svc.Verify(tk)
		if err == nil {
			t.Fatal("esperava erro para assinatura inválida")
		}
		if status := domainerrors.StatusOf(err); status != 403 {
			t.Errorf("esperava status 403, obteve %d", status)
		}
	})

	t.Run("token malformado é rejeitado", func(t *testing.T) {
		if _, err := svc.Verify("not-a-token"); err == nil {
			t.Fatal("esperava erro para token malformado")
		}
	})
}

func TestResetToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	t.Run("token de reset carrega o propósito", func(t *testing.T) {
		tk, err := svc.IssueResetToken(map[string]any{"sub": "user-1"})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		claims, err := svc.Verify(tk)
		if err != nil {
			t.Fatalf("esperava token válido, obteve erro: %v", err)
		}
		if !IsResetToken(claims) {
			t.Error("esperava IsResetToken verdadeiro para token de reset")
		}
	})

	t.Run("token de login não é token de reset", func(t *testing.T) {
		tk, err := svc.Issue(map[string]any{"sub": "user-1"})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		claims, err := svc.Verify(tk)
		if err != nil {
			t.Fatalf("esperava token válido, obteve erro: %v", err)
		}
		if IsResetToken(claims) {
			t.Error("esperava IsResetToken falso para token de login")
		}
	})
}
