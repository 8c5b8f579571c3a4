package models

import "github.com/google/uuid"

// Message rows are immutable once created. SenderID is always taken from
// verified token claims, never from the request body.
type Message struct {
	Base
	BoardID  uuid.UUID `gorm:"type:uuid;index;not null" json:"board_id"`
	SenderID uuid.UUID `gorm:"type:uuid;index;not null" json:"sender_id"`
	Content  string    `gorm:"not null" json:"content"`
}

func (Message) TableName() string {
	return "messages"
}
