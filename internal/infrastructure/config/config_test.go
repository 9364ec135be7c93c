package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_URL", "http://localhost:3000")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "tenantbase")
	t.Setenv("JWT_SECRET", "segredo-de-teste")
}

func TestLoad(t *testing.T) {
	t.Run("carrega configuração válida com defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("esperava porta padrão '8080', obteve '%s'", cfg.Server.Port)
		}
		if cfg.Database.Port != 5432 {
			t.Errorf("esperava porta de banco padrão 5432, obteve %d", cfg.Database.Port)
		}
	})

	t.Run("custo do bcrypt mora na seção de segurança", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if cfg.Security.BcryptCost != 10 {
			t.Errorf("esperava custo padrão 10, obteve %d", cfg.Security.BcryptCost)
		}
	})

	t.Run("custo do bcrypt fora da faixa aborta a inicialização", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BCRYPT_COST", "99")

		if _, err := Load(); err == nil {
			t.Fatal("esperava erro de validação, obteve sucesso")
		}
	})

	t.Run("variável obrigatória ausente aborta a inicialização", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("esperava erro de validação, obteve sucesso")
		}
	})
}
