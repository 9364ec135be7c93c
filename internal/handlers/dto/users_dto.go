package dto

import (
	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
)

// CreateUserRequest é o corpo de criação de usuário
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	RoleID      *string `json:"roleId" binding:"omitempty,uuid"`
	TenantID    *string `json:"tenantId" binding:"omitempty,uuid"`
}

// ToEntity converte o corpo na entidade de usuário
func (r CreateUserRequest) ToEntity() *entities.User {
	return &entities.User{
		Email:       r.Email,
		Password:    r.Password,
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Bio:         r.Bio,
		RoleID:      r.RoleID,
		TenantID:    r.TenantID,
	}
}

// UpdateUserRequest é o corpo de atualização parcial de usuário: apenas os
// campos presentes são alterados
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	RoleID      *string `json:"roleId" binding:"omitempty,uuid"`
	TenantID    *string `json:"tenantId" binding:"omitempty,uuid"`
}

// ToFields projeta os campos presentes como o mapa de atualização parcial
func (r UpdateUserRequest) ToFields() map[string]any {
	fields := map[string]any{}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Password != nil {
		fields["password"] = *r.Password
	}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.PhoneNumber != nil {
		fields["phoneNumber"] = *r.PhoneNumber
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.RoleID != nil {
		fields["roleId"] = *r.RoleID
	}
	if r.TenantID != nil {
		fields["tenantId"] = *r.TenantID
	}
	return fields
}
