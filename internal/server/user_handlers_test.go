package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"meridian/internal/config"
	"meridian/internal/models"
	"meridian/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestServer(userRepo *MockUserRepository) *Server {
	s := &Server{config: &config.Config{JWTSecret: "test-secret"}}
	s.userService = service.NewUserService(userRepo)
	return s
}

func TestGetUser_ByID(t *testing.T) {
	app := fiber.New()
	userRepo := new(MockUserRepository)
	s := newUserTestServer(userRepo)
	app.Get("/users/:id", s.GetUser)

	userRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.User{ID: 3, Username: "alice"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	userRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestGetUser_ByUsername(t *testing.T) {
	app := fiber.New()
	userRepo := new(MockUserRepository)
	s := newUserTestServer(userRepo)
	app.Get("/users/:id", s.GetUser)

	userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 3, Username: "alice"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, uint(3), user.ID)
}

func TestGetUser_NotFoundIs404(t *testing.T) {
	app := fiber.New()
	userRepo := new(MockUserRepository)
	s := newUserTestServer(userRepo)
	app.Get("/users/:id", s.GetUser)

	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", uint(99)))

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeNotFound, body.Code)
}

func TestGetUsers(t *testing.T) {
	app := fiber.New()
	userRepo := new(MockUserRepository)
	s := newUserTestServer(userRepo)
	app.Get("/users", s.GetUsers)

	userRepo.On("List", mock.Anything, 20, 0).Return([]models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)
}
