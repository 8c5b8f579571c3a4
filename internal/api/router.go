package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/api/handlers"
	"github.com/aplus/messaging/internal/api/middleware"
	"github.com/aplus/messaging/internal/auth"
	"github.com/aplus/messaging/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow all in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:4000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	boardHandler := handlers.NewBoardHandler(cfg.DB, cfg.Logger)
	messageHandler := handlers.NewMessageHandler(cfg.DB, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/db-check", healthHandler.DBCheck)

	// Public auth endpoints
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)

	// Protected routes. BoardAccess always composes after Auth; the gate
	// ordering is fixed here, not checked at runtime.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTService))

		boardAccess := middleware.BoardAccess(cfg.DB, cfg.Logger)

		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			userID := middleware.GetUserID(r.Context())
			user, err := cfg.AuthService.GetUserByID(r.Context(), userID)
			if err != nil {
				writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found."})
				return
			}
			writeJSON(w, http.StatusOK, user)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", boardHandler.List)
			r.Post("/", boardHandler.Create)
			r.With(boardAccess, middleware.RequireBoardRole(models.BoardRoleOwner)).
				Post("/{boardID}/participants", boardHandler.AddParticipant)
		})

		r.Route("/messages", func(r chi.Router) {
			r.With(boardAccess).Post("/", messageHandler.Create)
			r.With(boardAccess).Get("/{boardID}", messageHandler.List)
		})
	})

	return &Router{r}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
