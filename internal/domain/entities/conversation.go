package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message é uma mensagem da conversa (par role + content)
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageList é a lista de mensagens embutida na conversa, persistida como jsonb
type MessageList []Message

func (m MessageList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MessageList) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for MessageList: %T", value)
	}
}

// Conversation representa uma conversa de um usuário. Answers e Notes são
// JSON opaco: o sistema armazena e devolve sem interpretar.
type Conversation struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"type:uuid;index;not null" json:"userId"`
	Category  *string        `gorm:"type:varchar(255)" json:"category"`
	Answers   datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	Notes     datatypes.JSON `gorm:"type:jsonb" json:"notes"`
	Messages  MessageList    `gorm:"type:jsonb" json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
