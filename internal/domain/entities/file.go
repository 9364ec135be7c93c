package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File representa um arquivo enviado por um usuário. O registro só é criado
// depois que a escrita em disco teve sucesso; a remoção apaga também o
// artefato em disco e a exclusão do dono faz cascata sobre seus arquivos.
type File struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"userId"`
	Name      *string   `gorm:"type:varchar(255)" json:"name"`
	Path      *string   `gorm:"type:varchar(500)" json:"path"`
	Text      *string   `gorm:"type:text" json:"text"`
	Tags      *string   `gorm:"type:varchar(500)" json:"tags"`
	Views     int       `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (File) TableName() string {
	return "files"
}

func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
