package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/api/middleware"
	"github.com/aplus/messaging/internal/database"
	"github.com/aplus/messaging/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBoardHandler(db *gorm.DB, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{db: db, logger: logger}
}

// Create handles POST /api/boards. The creator becomes the board owner in
// the same transaction, so a board is never left without a participant.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req dto.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Board name is required.",
			Details: errors,
		})
		return
	}

	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	board := models.Board{
		Name:      req.Name,
		CreatedBy: userID,
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}

		participant := models.BoardParticipant{
			BoardID:     board.ID,
			UserID:      userID,
			RoleInBoard: models.BoardRoleOwner,
		}
		return tx.Create(&participant).Error
	})
	if err != nil {
		h.logger.Error("failed to create board", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	writeJSON(w, http.StatusCreated, dto.BoardResponse{
		OK: true,
		Board: dto.BoardDTO{
			ID:          board.ID.String(),
			Name:        board.Name,
			CreatedBy:   board.CreatedBy.String(),
			CreatedAt:   board.CreatedAt.Format(time.RFC3339),
			RoleInBoard: models.BoardRoleOwner,
		},
	})
}

// List handles GET /api/boards: the boards the caller participates in,
// annotated with the caller's board role.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	var participants []models.BoardParticipant
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&participants).Error; err != nil {
		h.logger.Error("failed to list participations", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	roles := make(map[uuid.UUID]string, len(participants))
	boardIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		roles[p.BoardID] = p.RoleInBoard
		boardIDs = append(boardIDs, p.BoardID)
	}

	out := make([]dto.BoardDTO, 0, len(boardIDs))
	if len(boardIDs) > 0 {
		var boards []models.Board
		if err := h.db.WithContext(ctx).
			Where("id IN ?", boardIDs).
			Order("created_at ASC").
			Find(&boards).Error; err != nil {
			h.logger.Error("failed to list boards", "user_id", userID, "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
			return
		}

		for _, b := range boards {
			out = append(out, dto.BoardDTO{
				ID:          b.ID.String(),
				Name:        b.Name,
				CreatedBy:   b.CreatedBy.String(),
				CreatedAt:   b.CreatedAt.Format(time.RFC3339),
				RoleInBoard: roles[b.ID],
			})
		}
	}

	writeJSON(w, http.StatusOK, dto.BoardListResponse{
		OK:     true,
		Boards: out,
	})
}

// AddParticipant handles POST /api/boards/{boardID}/participants. The route
// is gated on board role "owner".
func (h *BoardHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	boardID := middleware.GetBoardID(r.Context())

	var req dto.AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "userId is required.",
			Details: errs,
		})
		return
	}

	targetID, _ := uuid.Parse(req.UserID)
	role := req.Role
	if role == "" {
		role = models.BoardRoleMember
	}

	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	var target models.User
	if err := h.db.WithContext(ctx).First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "User not found."})
			return
		}
		h.logger.Error("failed to look up user", "user_id", targetID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	participant := models.BoardParticipant{
		BoardID:     boardID,
		UserID:      targetID,
		RoleInBoard: role,
	}

	if err := h.db.WithContext(ctx).Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "User is already a participant."})
			return
		}
		h.logger.Error("failed to add participant", "board_id", boardID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	writeJSON(w, http.StatusCreated, dto.ParticipantResponse{
		OK: true,
		Participant: dto.ParticipantDTO{
			ID:          participant.ID.String(),
			BoardID:     participant.BoardID.String(),
			UserID:      participant.UserID.String(),
			RoleInBoard: participant.RoleInBoard,
		},
	})
}
