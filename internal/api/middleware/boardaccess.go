package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aplus/messaging/internal/database"
	"github.com/aplus/messaging/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxBodyPeek bounds how much of the request body the gate will buffer
// while looking for a boardId field.
const maxBodyPeek = 1 << 20

// BoardAccess is the authorization gate. It must be registered after Auth:
// it trusts that identity claims are already on the context.
//
// The board id is resolved from the URL parameter on read routes
// (GET /api/messages/{boardID}) and from the JSON body on write routes
// (POST /api/messages); the path wins when both are present. The body is
// re-wound afterwards so handlers can decode it again.
func BoardAccess(db *gorm.DB, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			boardID, ok := resolveBoardID(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "boardId is required.")
				return
			}

			// Defensive: unreachable when the gates are composed in order.
			userID := GetUserID(r.Context())
			if userID == uuid.Nil {
				writeError(w, http.StatusUnauthorized, "Not authenticated.")
				return
			}

			qctx, cancel := database.QueryContext(r.Context())
			defer cancel()

			// Point lookup, no caching: absence of the row is the sole
			// authorization predicate.
			var participant models.BoardParticipant
			err := db.WithContext(qctx).
				Where("board_id = ? AND user_id = ?", boardID, userID).
				First(&participant).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					writeError(w, http.StatusForbidden,
						"Forbidden: you do not have access to this board.")
					return
				}
				logger.Error("board access lookup failed",
					"board_id", boardID, "user_id", userID, "error", err)
				writeError(w, http.StatusInternalServerError, "Unexpected server error.")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, BoardIDKey, boardID)
			ctx = context.WithValue(ctx, BoardRoleKey, participant.RoleInBoard)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveBoardID(r *http.Request) (uuid.UUID, bool) {
	if param := chi.URLParam(r, "boardID"); param != "" {
		id, err := uuid.Parse(param)
		return id, err == nil
	}

	if r.Body == nil {
		return uuid.Nil, false
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBodyPeek))
	if err != nil {
		return uuid.Nil, false
	}
	// Hand the body back to the handler.
	r.Body = io.NopCloser(bytes.NewReader(buf))

	var peek struct {
		BoardID string `json:"boardId"`
	}
	if err := json.Unmarshal(buf, &peek); err != nil || peek.BoardID == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(peek.BoardID)
	return id, err == nil
}

// RequireBoardRole gates a route on the membership role attached by
// BoardAccess.
func RequireBoardRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			boardRole := GetBoardRole(r.Context())

			for _, role := range roles {
				if boardRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden,
				"Forbidden: you do not have access to this board.")
		})
	}
}
