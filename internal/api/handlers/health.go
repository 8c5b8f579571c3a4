package handlers

import (
	"net/http"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health handles GET /health (liveness, no dependencies touched).
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "APlus Messaging backend is running",
	})
}

// Ready handles GET /ready: the process is ready once the store (and Redis,
// when configured) answer a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	sqlDB, err := h.db.DB()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Database unavailable."})
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Database unavailable."})
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Redis unavailable."})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// DBCheck handles GET /db-check: round-trips a query and reports the
// store's clock.
func (h *HealthHandler) DBCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := database.QueryContext(r.Context())
	defer cancel()

	var serverTime string
	if err := h.db.WithContext(ctx).Raw("SELECT CURRENT_TIMESTAMP").Scan(&serverTime).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"server_time": serverTime,
	})
}
