package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

func testConfig(expirationMinutes int) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			ExpirationMinutes: expirationMinutes,
		},
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := testConfig(60)
	tenantID := uuid.New()

	user := &models.User{
		ID:       uuid.New(),
		Username: "drsmith",
		Role:     models.RoleDietitian,
		TenantID: &tenantID,
	}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, models.RoleDietitian, claims.Role)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, tenantID, *claims.TenantID)
}

func TestValidateJWTNilTenant(t *testing.T) {
	cfg := testConfig(60)

	user := &models.User{
		ID:       uuid.New(),
		Username: "root",
		Role:     models.RoleSuperAdmin,
	}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Nil(t, claims.TenantID)
}

func TestValidateJWTExpired(t *testing.T) {
	cfg := testConfig(-1)

	user := &models.User{ID: uuid.New(), Username: "old", Role: models.RolePatient}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)

	_, err = ValidateJWT(token, cfg)
	assert.Error(t, err)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "eve", Role: models.RolePatient}

	token, err := GenerateJWT(user, testConfig(60))
	require.NoError(t, err)

	other := testConfig(60)
	other.JWT.Secret = "another-secret"

	_, err = ValidateJWT(token, other)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testConfig(60))
	assert.Error(t, err)
}
