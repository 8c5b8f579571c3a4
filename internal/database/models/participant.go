package models

import "github.com/google/uuid"

// Board-level roles carried by participant rows.
const (
	BoardRoleOwner  = "owner"
	BoardRoleMember = "member"
)

// BoardParticipant is the authorization record: a user may act on a board's
// messages iff a row exists for the (board, user) pair.
type BoardParticipant struct {
	Base
	BoardID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_board_user;not null" json:"board_id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_board_user;not null" json:"user_id"`
	RoleInBoard string    `gorm:"default:'member'" json:"role_in_board"`
}

func (BoardParticipant) TableName() string {
	return "board_participants"
}
