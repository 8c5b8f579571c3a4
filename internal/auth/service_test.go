package auth_test

import (
	"context"
	"testing"

	"github.com/aplus/messaging/internal/auth"
	"github.com/aplus/messaging/internal/database/models"
	"github.com/aplus/messaging/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Signup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := auth.NewService(db, testutil.CreateTestJWTService())

	t.Run("creates client and issues verifiable token", func(t *testing.T) {
		resp, err := svc.Signup(context.Background(), auth.SignupInput{
			Email:    "a@x.com",
			Password: "pw1",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleClient, resp.User.Role)
		assert.NotEmpty(t, resp.Token)

		claims, err := testutil.CreateTestJWTService().ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, models.RoleClient, claims.Role)
	})

	t.Run("stores a digest, not the password", func(t *testing.T) {
		var user models.User
		require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
		assert.NotEqual(t, "pw1", user.PasswordHash)
		assert.True(t, auth.CheckPassword("pw1", user.PasswordHash))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), auth.SignupInput{
			Email:    "a@x.com",
			Password: "other",
		})
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	jwtService := testutil.CreateTestJWTService()
	svc := auth.NewService(db, jwtService)
	user := testutil.CreateTestUser(t, db)

	t.Run("correct credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), auth.LoginInput{
			Email:    user.Email,
			Password: testutil.TestPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)

		claims, err := jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, models.RoleClient, claims.Role)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPw := svc.Login(context.Background(), auth.LoginInput{
			Email:    user.Email,
			Password: "not-the-password",
		})
		_, unknown := svc.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: testutil.TestPassword,
		})
		assert.ErrorIs(t, wrongPw, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
	})

	t.Run("non-client role cannot log in", func(t *testing.T) {
		hash, err := auth.HashPassword(testutil.TestPassword)
		require.NoError(t, err)
		admin := models.User{
			Email:        "admin@example.com",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		require.NoError(t, db.Create(&admin).Error)

		_, err = svc.Login(context.Background(), auth.LoginInput{
			Email:    "admin@example.com",
			Password: testutil.TestPassword,
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_GetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := auth.NewService(db, testutil.CreateTestJWTService())
	user := testutil.CreateTestUser(t, db)

	got, err := svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
