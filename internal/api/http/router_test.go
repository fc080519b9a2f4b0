package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/usecase-catalog/internal/api/http"
	"github.com/spec-kit/usecase-catalog/internal/api/http/handlers"
	"github.com/spec-kit/usecase-catalog/internal/auth"
	"github.com/spec-kit/usecase-catalog/internal/domain"
	"github.com/spec-kit/usecase-catalog/internal/observability"
	"github.com/spec-kit/usecase-catalog/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

type testServer struct {
	app    *fiber.App
	tokens map[domain.Role]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	useCaseRepo := repository.NewMemoryUseCaseRepository()
	userRepo := repository.NewMemoryUserRepository()
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)

	tokens := make(map[domain.Role]string)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer} {
		hash, err := auth.HashPassword("password-"+string(role), 4)
		require.NoError(t, err)
		user := &domain.User{
			Name:         string(role),
			Email:        string(role) + "@example.com",
			PasswordHash: hash,
			Role:         role,
		}
		require.NoError(t, userRepo.Create(context.Background(), user))

		token, _, err := tokenManager.GenerateToken(user.ID, role)
		require.NoError(t, err)
		tokens[role] = token
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("usecase-catalog", "test", nil, nil),
		UseCases:       handlers.NewUseCasesHandler(useCaseRepo),
		Auth:           handlers.NewAuthHandler(userRepo, tokenManager),
		AuthMiddleware: auth.NewMiddleware(tokenManager),
	})

	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, 5000)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func createPayload() map[string]any {
	return map[string]any{
		"title":             "Demand Forecasting",
		"short_description": "Forecasts demand",
		"full_description":  "Forecasts product demand from order history",
		"department":        "Operations",
		"status":            "PoC",
		"owner_name":        "Jamie Doe",
		"owner_email":       "jamie.doe@example.com",
		"technology_stack":  []string{"Go", "Postgres"},
		"tags":              []string{"Forecasting"},
		"internal_links":    map[string]string{"confluence": "https://confluence.example.com/forecast"},
	}
}

func (s *testServer) createUseCase(t *testing.T) domain.UseCase {
	t.Helper()
	resp, env := s.request(t, http.MethodPost, "/api/use-cases", s.tokens[domain.RoleEditor], createPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var uc domain.UseCase
	require.NoError(t, json.Unmarshal(env.Data, &uc))
	return uc
}

func TestLivenessBanner(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := s.app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "usecase-catalog")
}

func TestListEmptyCatalogIsSuccess(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.request(t, http.MethodGet, "/api/use-cases", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
}

func TestCreateRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.request(t, http.MethodPost, "/api/use-cases", "", createPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = s.request(t, http.MethodPost, "/api/use-cases", "not-a-token", createPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.request(t, http.MethodPost, "/api/use-cases", s.tokens[domain.RoleViewer], createPayload())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateValidatesPayload(t *testing.T) {
	s := newTestServer(t)

	payload := createPayload()
	payload["department"] = "Sales"
	resp, env := s.request(t, http.MethodPost, "/api/use-cases", s.tokens[domain.RoleEditor], payload)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "department")
}

func TestCreateWithoutInternalLinksIsRejected(t *testing.T) {
	s := newTestServer(t)

	payload := createPayload()
	delete(payload, "internal_links")
	resp, env := s.request(t, http.MethodPost, "/api/use-cases", s.tokens[domain.RoleEditor], payload)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "internal_links")
}

func TestCreateTypeMismatchNamesField(t *testing.T) {
	s := newTestServer(t)

	payload := createPayload()
	payload["technology_stack"] = "Python"
	resp, env := s.request(t, http.MethodPost, "/api/use-cases", s.tokens[domain.RoleEditor], payload)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "technology_stack")
	assert.Contains(t, env.Error, "array")
}

func TestUpdateTypeMismatchNamesField(t *testing.T) {
	s := newTestServer(t)
	uc := s.createUseCase(t)

	resp, env := s.request(t, http.MethodPut, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleEditor],
		map[string]any{"internal_links": []string{"x"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "internal_links")
}

func TestCreateAndGet(t *testing.T) {
	s := newTestServer(t)

	uc := s.createUseCase(t)
	assert.NotEmpty(t, uc.ID)
	assert.True(t, uc.CreatedAt.Equal(uc.UpdatedAt))

	resp, env := s.request(t, http.MethodGet, "/api/use-cases/"+uc.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var got domain.UseCase
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, uc.ID, got.ID)
	assert.Equal(t, "Demand Forecasting", got.Title)
}

func TestGetUnknownIDIs404(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.request(t, http.MethodGet, "/api/use-cases/does-not-exist", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "not found")
}

func TestUpdate(t *testing.T) {
	s := newTestServer(t)
	uc := s.createUseCase(t)

	resp, env := s.request(t, http.MethodPut, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleEditor],
		map[string]any{"status": "Live"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.UseCase
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, domain.StatusLive, got.Status)
	assert.Equal(t, uc.Title, got.Title, "unsupplied fields keep their values")
	assert.True(t, got.UpdatedAt.After(uc.UpdatedAt))
}

func TestUpdateWithNoFieldsIs400(t *testing.T) {
	s := newTestServer(t)
	uc := s.createUseCase(t)

	resp, env := s.request(t, http.MethodPut, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleEditor],
		map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "no update data")
}

func TestUpdateUnknownIDIs404(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.request(t, http.MethodPut, "/api/use-cases/missing", s.tokens[domain.RoleEditor],
		map[string]any{"status": "Live"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	uc := s.createUseCase(t)

	resp, _ := s.request(t, http.MethodDelete, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleEditor], nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := s.request(t, http.MethodDelete, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleAdmin], nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "deleted")

	resp, _ = s.request(t, http.MethodDelete, "/api/use-cases/"+uc.ID, s.tokens[domain.RoleAdmin], nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@example.com", "password": "password-admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "admin", data.User.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)

	readBody := func(email, password string) (int, string) {
		raw, err := json.Marshal(map[string]string{"email": email, "password": password})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.app.Test(req, 5000)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	wrongPwStatus, wrongPwBody := readBody("admin@example.com", "wrong")
	unknownStatus, unknownBody := readBody("ghost@example.com", "whatever")

	assert.Equal(t, http.StatusUnauthorized, wrongPwStatus)
	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.Equal(t, wrongPwBody, unknownBody,
		"responses must not reveal whether the account exists")
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
