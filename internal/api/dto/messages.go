package dto

import "github.com/google/uuid"

// CreateMessageRequest carries boardId for the authorization gate; any
// sender field a client sends is ignored.
type CreateMessageRequest struct {
	BoardID string `json:"boardId"`
	Content string `json:"content"`
}

func (r CreateMessageRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.BoardID == "" {
		errors["boardId"] = "Board ID is required"
	} else if _, err := uuid.Parse(r.BoardID); err != nil {
		errors["boardId"] = "Invalid board ID format"
	}
	if r.Content == "" {
		errors["content"] = "Content is required"
	}

	return errors
}

type MessageDTO struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type MessageResponse struct {
	OK      bool       `json:"ok"`
	Message MessageDTO `json:"message"`
}

type MessageListResponse struct {
	OK       bool         `json:"ok"`
	Messages []MessageDTO `json:"messages"`
}
