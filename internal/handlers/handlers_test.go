package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
	"github.com/mahmoudhijazi1/diet-platform/internal/utils"
)

// In-memory stores backing the services under test.

type memUserStore struct {
	users map[uuid.UUID]*models.User
}

func (s *memUserStore) Create(_ context.Context, name, email, username, passwordHash string, role models.UserRole, tenantID *uuid.UUID) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return nil, repository.ErrDuplicate
		}
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		TenantID:     tenantID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByID(_ context.Context, userID uuid.UUID, tenantID *uuid.UUID) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok || !userInScope(user, tenantID) {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string, tenantID *uuid.UUID) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username && userInScope(user, tenantID) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) ListByTenantAndRole(_ context.Context, tenantID uuid.UUID, role models.UserRole) ([]models.User, error) {
	result := []models.User{}
	for _, user := range s.users {
		if user.Role == role && user.TenantID != nil && *user.TenantID == tenantID {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (s *memUserStore) Delete(_ context.Context, userID uuid.UUID, tenantID *uuid.UUID) error {
	user, ok := s.users[userID]
	if !ok || !userInScope(user, tenantID) {
		return repository.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *memUserStore) UpdateAvatarURL(_ context.Context, userID uuid.UUID, avatarURL string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

func userInScope(user *models.User, tenantID *uuid.UUID) bool {
	if tenantID == nil {
		return true
	}
	return user.TenantID != nil && *user.TenantID == *tenantID
}

type memTenantStore struct {
	tenants map[uuid.UUID]*models.Tenant
}

func (s *memTenantStore) Create(_ context.Context, name string, status models.TenantStatus, subscription models.SubscriptionType) (*models.Tenant, error) {
	tenant := &models.Tenant{
		ID:               uuid.New(),
		Name:             name,
		Status:           status,
		SubscriptionType: subscription,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	s.tenants[tenant.ID] = tenant
	copied := *tenant
	return &copied, nil
}

func (s *memTenantStore) List(_ context.Context) ([]models.Tenant, error) {
	result := []models.Tenant{}
	for _, tenant := range s.tenants {
		result = append(result, *tenant)
	}
	return result, nil
}

func (s *memTenantStore) GetByID(_ context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *tenant
	return &copied, nil
}

func (s *memTenantStore) Update(_ context.Context, tenantID uuid.UUID, patch models.UpdateTenantRequest) (*models.Tenant, error) {
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		tenant.Name = *patch.Name
	}
	if patch.Status != nil {
		tenant.Status = *patch.Status
	}
	if patch.SubscriptionType != nil {
		tenant.SubscriptionType = *patch.SubscriptionType
	}
	tenant.UpdatedAt = time.Now()
	copied := *tenant
	return &copied, nil
}

func (s *memTenantStore) Delete(_ context.Context, tenantID uuid.UUID) error {
	if _, ok := s.tenants[tenantID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tenants, tenantID)
	return nil
}

type testEnv struct {
	router *gin.Engine
	cfg    *config.Config
	users  *memUserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpirationMinutes: 60},
	}

	users := &memUserStore{users: make(map[uuid.UUID]*models.User)}
	tenants := &memTenantStore{tenants: make(map[uuid.UUID]*models.Tenant)}

	authService := services.NewAuthService(users, cfg)
	tenantService := services.NewTenantService(tenants, nil)

	authHandler := NewAuthHandler(authService)
	tenantHandler := NewTenantHandler(tenantService)

	router := gin.New()
	router.POST("/api/v1/auth/login", authHandler.Login)

	protected := router.Group("/api/v1")
	protected.Use(middleware.Auth(cfg))
	{
		protected.GET("/auth/me", authHandler.Me)

		tenantRoutes := protected.Group("/tenants")
		tenantRoutes.Use(middleware.RequireRoles(models.RoleSuperAdmin))
		{
			tenantRoutes.POST("", tenantHandler.Create)
			tenantRoutes.GET("", tenantHandler.List)
			tenantRoutes.GET("/:id", tenantHandler.Get)
			tenantRoutes.PATCH("/:id", tenantHandler.Update)
			tenantRoutes.DELETE("/:id", tenantHandler.Delete)
		}
	}

	return &testEnv{router: router, cfg: cfg, users: users}
}

func (e *testEnv) seedUser(t *testing.T, username, password string, role models.UserRole, tenantID *uuid.UUID) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user, err := e.users.Create(context.Background(), "Test User", username+"@example.com", username, hash, role, tenantID)
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user, e.cfg)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "root", "correct-horse", models.RoleSuperAdmin, nil)

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "root",
		Password: "correct-horse",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
}

func TestLoginEndpointFailures(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "root", "correct-horse", models.RoleSuperAdmin, nil)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{"wrong password", models.LoginRequest{Username: "root", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", models.LoginRequest{Username: "ghost", Password: "whatever"}, http.StatusUnauthorized},
		{"missing fields", map[string]string{"username": "root"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, decodeEnvelope(t, w).Success)
		})
	}
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	tenantID := uuid.New()
	user := env.seedUser(t, "drsmith", "correct-horse", models.RoleDietitian, &tenantID)

	w := env.do(t, http.MethodGet, "/api/v1/auth/me", env.tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "drsmith", data["username"])
	// The password hash never appears in responses.
	assert.NotContains(t, data, "password_hash")
}

func TestMeEndpointUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "root", "correct-horse", models.RoleSuperAdmin, nil)
	token := env.tokenFor(t, admin)

	// Create
	w := env.do(t, http.MethodPost, "/api/v1/tenants", token, models.CreateTenantRequest{Name: "Sunrise Clinic"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	tenantID := data["id"].(string)
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "FREE", data["subscription_type"])

	// Patch only the status
	w = env.do(t, http.MethodPatch, "/api/v1/tenants/"+tenantID, token, map[string]string{"status": "SUSPENDED"})
	require.Equal(t, http.StatusOK, w.Code)

	// Read back: the patch stuck, the rest is untouched
	w = env.do(t, http.MethodGet, "/api/v1/tenants/"+tenantID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "SUSPENDED", data["status"])
	assert.Equal(t, "Sunrise Clinic", data["name"])

	// Delete, then the tenant is gone
	w = env.do(t, http.MethodDelete, "/api/v1/tenants/"+tenantID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/tenants/"+tenantID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantRoutesForbiddenForOtherRoles(t *testing.T) {
	env := newTestEnv(t)
	tenantID := uuid.New()

	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleDietitian, models.RolePatient} {
		user := env.seedUser(t, fmt.Sprintf("user-%s", role), "correct-horse", role, &tenantID)
		w := env.do(t, http.MethodGet, "/api/v1/tenants", env.tokenFor(t, user), nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
	}
}

func TestTenantInvalidID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "root", "correct-horse", models.RoleSuperAdmin, nil)

	w := env.do(t, http.MethodGet, "/api/v1/tenants/not-a-uuid", env.tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
