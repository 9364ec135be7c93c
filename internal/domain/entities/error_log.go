package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrorLog é o registro append-only gravado pelo error handler central
// quando o log em arquivo está desabilitado
type ErrorLog struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Status     string         `gorm:"type:varchar(10)" json:"status"`
	Message    string         `gorm:"type:text" json:"message"`
	Method     string         `gorm:"type:varchar(10)" json:"method"`
	URL        string         `gorm:"type:varchar(500)" json:"url"`
	LoggedUser string         `gorm:"type:varchar(255)" json:"loggedUser"`
	Name       string         `gorm:"type:varchar(100)" json:"name"`
	Stack      string         `gorm:"type:text" json:"stack"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}

func (e *ErrorLog) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
