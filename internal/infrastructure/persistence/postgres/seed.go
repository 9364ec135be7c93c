package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
)

// Migrate cria e atualiza o schema das entidades persistidas
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.Tenant{},
		&entities.Role{},
		&entities.User{},
		&entities.File{},
		&entities.Conversation{},
		&entities.ErrorLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Seed garante os registros base: o tenant padrão e os papéis conhecidos.
// A operação é idempotente.
func Seed(db *gorm.DB, log ports.Logger) error {
	tenant := entities.Tenant{Name: entities.DefaultTenantName}
	if err := db.Where("name = ?", tenant.Name).FirstOrCreate(&tenant).Error; err != nil {
		return fmt.Errorf("failed to seed default tenant: %w", err)
	}

	for _, name := range []string{entities.RoleAdmin, entities.RoleUser, entities.RoleTenant} {
		role := entities.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	log.Info("database seeded", "tenant", tenant.Name)
	return nil
}
