package handlers_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/aplus/messaging/internal/api"
	"github.com/aplus/messaging/internal/auth"
	"github.com/aplus/messaging/internal/testutil"
)

// setupTestRouter builds the full router so tests exercise the real gate
// composition, not handlers in isolation.
func setupTestRouter(t *testing.T) (*api.Router, *testutil.TestSetup) {
	t.Helper()

	tc := testutil.NewTestContext(t)
	authService := auth.NewService(tc.DB, tc.JWTService)

	router := api.NewRouter(api.RouterConfig{
		DB:          tc.DB,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTService:  tc.JWTService,
		AuthService: authService,
	})

	return router, tc
}
