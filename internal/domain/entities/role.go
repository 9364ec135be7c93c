package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nomes de roles conhecidos. "user" é o papel atribuído por padrão.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleTenant = "tenant"
)

// Role representa o papel de um usuário no sistema
type Role struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
