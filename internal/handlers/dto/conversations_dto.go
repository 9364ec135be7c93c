package dto

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
)

// CreateConversationRequest é o corpo de criação de conversa. Answers e
// Notes são JSON opaco, aceitos como vierem.
type CreateConversationRequest struct {
	UserID   string             `json:"userId" binding:"required,uuid"`
	Category *string            `json:"category"`
	Answers  json.RawMessage    `json:"answers"`
	Notes    json.RawMessage    `json:"notes"`
	Messages []entities.Message `json:"messages"`
}

// ToEntity converte o corpo na entidade de conversa
func (r CreateConversationRequest) ToEntity() *entities.Conversation {
	return &entities.Conversation{
		UserID:   r.UserID,
		Category: r.Category,
		Answers:  datatypes.JSON(r.Answers),
		Notes:    datatypes.JSON(r.Notes),
		Messages: entities.MessageList(r.Messages),
	}
}

// UpdateConversationRequest é o corpo de atualização parcial de conversa
type UpdateConversationRequest struct {
	Category *string             `json:"category"`
	Answers  json.RawMessage     `json:"answers"`
	Notes    json.RawMessage     `json:"notes"`
	Messages *[]entities.Message `json:"messages"`
}

// ToFields projeta os campos presentes como o mapa de atualização parcial
func (r UpdateConversationRequest) ToFields() map[string]any {
	fields := map[string]any{}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Answers != nil {
		fields["answers"] = datatypes.JSON(r.Answers)
	}
	if r.Notes != nil {
		fields["notes"] = datatypes.JSON(r.Notes)
	}
	if r.Messages != nil {
		fields["messages"] = entities.MessageList(*r.Messages)
	}
	return fields
}
