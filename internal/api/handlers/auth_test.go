package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Signup(t *testing.T) {
	router, tc := setupTestRouter(t)
	defer tc.Cleanup()

	t.Run("successful signup", func(t *testing.T) {
		body := map[string]string{
			"email":    "newuser@example.com",
			"password": "securepassword123",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/auth/signup", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "newuser@example.com", resp.User.Email)
		assert.Equal(t, "client", resp.User.Role)

		// The token round-trips to claims matching the created user.
		claims, err := tc.JWTService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID.String())
		assert.Equal(t, resp.User.Email, claims.Email)
		assert.Equal(t, resp.User.Role, claims.Role)
	})

	t.Run("role in body is ignored", func(t *testing.T) {
		body := map[string]string{
			"email":    "sneaky@example.com",
			"password": "securepassword123",
			"role":     "admin",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/auth/signup", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "client", resp.User.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		body := map[string]string{
			"email":    "duplicate@example.com",
			"password": "securepassword123",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/auth/signup", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		req = testutil.UnauthenticatedRequest(t, "POST", "/auth/signup", body)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Contains(t, rr.Body.String(), "User already exists.")
	})

	t.Run("missing fields", func(t *testing.T) {
		tests := []struct {
			name string
			body map[string]string
		}{
			{"missing email", map[string]string{"password": "securepassword123"}},
			{"missing password", map[string]string{"email": "nopw@example.com"}},
			{"empty body", map[string]string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := testutil.UnauthenticatedRequest(t, "POST", "/auth/signup", tt.body)
				rr := httptest.NewRecorder()
				router.ServeHTTP(rr, req)

				testutil.AssertStatus(t, rr, http.StatusBadRequest)
			})
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	router, tc := setupTestRouter(t)
	defer tc.Cleanup()

	t.Run("successful login", func(t *testing.T) {
		body := map[string]string{
			"email":    tc.User.Email,
			"password": testutil.TestPassword,
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/auth/login", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Token)

		claims, err := tc.JWTService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "client", claims.Role)
		assert.Equal(t, tc.User.ID, claims.UserID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPw := map[string]string{
			"email":    tc.User.Email,
			"password": "wrongpassword",
		}
		unknown := map[string]string{
			"email":    "nonexistent@example.com",
			"password": testutil.TestPassword,
		}

		responses := make([]*httptest.ResponseRecorder, 0, 2)
		for _, body := range []map[string]string{wrongPw, unknown} {
			req := testutil.UnauthenticatedRequest(t, "POST", "/auth/login", body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			responses = append(responses, rr)
		}

		for _, rr := range responses {
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
		}
		assert.Equal(t, responses[0].Body.String(), responses[1].Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/auth/login", map[string]string{"email": tc.User.Email})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Contains(t, rr.Body.String(), "Email and password required.")
	})
}
