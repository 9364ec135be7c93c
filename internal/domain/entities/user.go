package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User representa um usuário do sistema. O campo Password nunca é retornado
// nas leituras padrão (faz parte do conjunto de campos omitidos do repositório).
type User struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"type:varchar(255);not null" json:"password,omitempty"`
	Name        *string        `gorm:"type:varchar(255)" json:"name"`
	PhoneNumber *string        `gorm:"type:varchar(50)" json:"phoneNumber"`
	Bio         *string        `gorm:"type:text" json:"bio"`
	ResetToken  *string        `gorm:"type:varchar(512)" json:"resetToken,omitempty"`
	RoleID      *string        `gorm:"type:uuid;index" json:"roleId"`
	TenantID    *string        `gorm:"type:uuid;index" json:"tenantId"`
	Role        *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Tenant      *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
