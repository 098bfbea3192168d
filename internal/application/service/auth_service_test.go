package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/repository/memory"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
	"github.com/orderdesk/orderdesk-api/pkg/utils"
)

func newTestAuthService(t *testing.T) (*AuthService, *utils.JWTManager) {
	t.Helper()
	hashed, err := utils.HashPassword("admin1234")
	require.NoError(t, err)

	store := memory.New()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		Username: "admin",
		Name:     "Administrator",
		Password: hashed,
		StoreID:  "S001",
	}))
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(store.Users(), jwtManager), jwtManager
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, jwtManager := newTestAuthService(t)

	output, err := svc.Login(context.Background(), &LoginInput{
		Username: "admin",
		Password: "admin1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, output.AccessToken)

	claims, err := jwtManager.ValidateAccessToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "S001", claims.StoreID)
	assert.Equal(t, output.User.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &LoginInput{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &LoginInput{
		Username: "nobody",
		Password: "admin1234",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}
