package dto

import "github.com/google/uuid"

type CreateBoardRequest struct {
	Name string `json:"name"`
}

func (r CreateBoardRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}

	return errors
}

type BoardDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	RoleInBoard string `json:"role_in_board,omitempty"`
}

type BoardResponse struct {
	OK    bool     `json:"ok"`
	Board BoardDTO `json:"board"`
}

type BoardListResponse struct {
	OK     bool       `json:"ok"`
	Boards []BoardDTO `json:"boards"`
}

type AddParticipantRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

func (r AddParticipantRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "User ID is required"
	} else if _, err := uuid.Parse(r.UserID); err != nil {
		errors["userId"] = "Invalid user ID format"
	}
	if r.Role != "" && r.Role != "owner" && r.Role != "member" {
		errors["role"] = "Invalid board role"
	}

	return errors
}

type ParticipantDTO struct {
	ID          string `json:"id"`
	BoardID     string `json:"board_id"`
	UserID      string `json:"user_id"`
	RoleInBoard string `json:"role_in_board"`
}

type ParticipantResponse struct {
	OK          bool           `json:"ok"`
	Participant ParticipantDTO `json:"participant"`
}
