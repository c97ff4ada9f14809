package service

import (
	"testing"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/db"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

func setupAuthTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewAuthService(
		repository.NewUserRepository(testDB),
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthTest(t)

	user, tokens, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "operador@ecoenergi.com.br", user.Email)
	assert.NotEqual(t, "senha123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)

	user, tokens, err := svc.Register("operador@ecoenergi.com.br", "outrasenha", "Outro Nome")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Nil(t, user)
	assert.Nil(t, tokens)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthTest(t)

	registered, _, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)

	user, tokens, err := svc.Login("operador@ecoenergi.com.br", "senha123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, tokens)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "operador@ecoenergi.com.br", claims.Email)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "operador@ecoenergi.com.br", "errada"},
		{"unknown email", "ninguem@ecoenergi.com.br", "senha123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := svc.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, user)
			assert.Nil(t, tokens)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc := setupAuthTest(t)

	_, tokens, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestAuthService_RefreshInvalidToken(t *testing.T) {
	svc := setupAuthTest(t)

	refreshed, err := svc.Refresh("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, refreshed)
}

func TestAuthService_GetUserByID(t *testing.T) {
	svc := setupAuthTest(t)

	registered, _, err := svc.Register("operador@ecoenergi.com.br", "senha123", "Ana Operadora")
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Operadora", user.Name)

	user, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}
