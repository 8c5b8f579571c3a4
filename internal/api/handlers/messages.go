package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/api/middleware"
	"github.com/aplus/messaging/internal/database"
	"github.com/aplus/messaging/internal/database/models"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

type MessageHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMessageHandler(db *gorm.DB, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{db: db, logger: logger}
}

// Create handles POST /api/messages. Auth and BoardAccess have already run;
// the board id on the context is the one the gate authorized.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "boardId and content are required.",
			Details: errors,
		})
		return
	}

	message := models.Message{
		BoardID: middleware.GetBoardID(r.Context()),
		// Sender always comes from the verified claims. A sender_id in the
		// request body is silently discarded.
		SenderID: middleware.GetUserID(r.Context()),
		Content:  req.Content,
	}

	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	if err := h.db.WithContext(ctx).Create(&message).Error; err != nil {
		h.logger.Error("failed to create message", "board_id", message.BoardID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	writeJSON(w, http.StatusCreated, dto.MessageResponse{
		OK:      true,
		Message: messageToDTO(&message),
	})
}

// List handles GET /api/messages/{boardID}. Messages come back in creation
// order; a board with no messages yields an empty array, not an error.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID := middleware.GetBoardID(r.Context())

	var messages []models.Message

	// Reads are idempotent, so a transient store failure gets exactly one
	// retry. Writes never do.
	backoff := retry.WithMaxRetries(1, retry.NewConstant(100*time.Millisecond))
	err := retry.Do(r.Context(), backoff, func(ctx context.Context) error {
		qctx, cancel := database.QueryContext(ctx)
		defer cancel()

		if err := h.db.WithContext(qctx).
			Where("board_id = ?", boardID).
			Order("created_at ASC").
			Find(&messages).Error; err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		h.logger.Error("failed to list messages", "board_id", boardID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	out := make([]dto.MessageDTO, len(messages))
	for i := range messages {
		out[i] = messageToDTO(&messages[i])
	}

	writeJSON(w, http.StatusOK, dto.MessageListResponse{
		OK:       true,
		Messages: out,
	})
}

func messageToDTO(m *models.Message) dto.MessageDTO {
	return dto.MessageDTO{
		ID:        m.ID.String(),
		BoardID:   m.BoardID.String(),
		SenderID:  m.SenderID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
	}
}
