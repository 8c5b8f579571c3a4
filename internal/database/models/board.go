package models

import "github.com/google/uuid"

type Board struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
}

func (Board) TableName() string {
	return "boards"
}
