package routes

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JungleeAadmi/component-storage/internal/storage/containers"
	"github.com/JungleeAadmi/component-storage/internal/users"
	"github.com/JungleeAadmi/component-storage/pkg/models"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, passwordHash string, role string) (*models.User, error) {
	args := m.Called(req, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(id int, role string) (*models.User, error) {
	args := m.Called(id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockContainerService records the user id carried by the request context of each call.
type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) ListContainers() ([]models.Container, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Container), args.Error(1)
}

func (m *MockContainerService) GetContainer(id int) (*models.Container, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerService) CreateContainer(ctx context.Context, req models.ContainerRequest, image *multipart.FileHeader) (*models.Container, error) {
	args := m.Called(security.UserIDFromContext(ctx), req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerService) UpdateContainer(ctx context.Context, id int, changes models.ContainerChanges, image *multipart.FileHeader) (*models.Container, error) {
	args := m.Called(security.UserIDFromContext(ctx), id, changes, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Container), args.Error(1)
}

func (m *MockContainerService) DeleteContainer(ctx context.Context, id int) ([]string, error) {
	args := m.Called(security.UserIDFromContext(ctx), id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContainerService) CreateSection(ctx context.Context, containerID int, req models.SectionRequest) (*models.Section, error) {
	args := m.Called(security.UserIDFromContext(ctx), containerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func TestSignedUpUserCanDeleteContainer(t *testing.T) {
	app := newTestApp(t)
	userRepo := new(MockUserRepository)
	containerService := new(MockContainerService)
	app.UserHandler = users.NewHandler(userRepo, app.Tokens)
	app.ContainerHandler = containers.NewContainerHandler(containerService)
	router := NewRouter(app)

	userRepo.On("PersistUser", mock.Anything, mock.Anything, "user").
		Return(&models.User{ID: 8, Username: "ada", Role: "user"}, nil)
	containerService.On("DeleteContainer", 8, 3).Return([]string{"/uploads/cabinet.png"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"username":"ada","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var signup struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))
	require.NotEmpty(t, signup.Token)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/containers/3", nil)
	req.Header.Set("Authorization", "Bearer "+signup.Token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Container deleted successfully")
	containerService.AssertExpectations(t)
}

func TestAdminPromotesSignedUpUser(t *testing.T) {
	app := newTestApp(t)
	userRepo := new(MockUserRepository)
	app.UserHandler = users.NewHandler(userRepo, app.Tokens)
	router := NewRouter(app)

	userRepo.On("UpdateRole", 8, "moderator").
		Return(&models.User{ID: 8, Username: "ada", Role: "moderator"}, nil)

	adminToken, err := app.Tokens.GenerateJWT(1, "admin", "root")
	require.NoError(t, err)
	userToken, err := app.Tokens.GenerateJWT(8, "user", "ada")
	require.NoError(t, err)

	promote := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/users/8", strings.NewReader(`{"role":"moderator"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusForbidden, promote(userToken).Code)

	w := promote(adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"moderator"`)
	userRepo.AssertNumberOfCalls(t, "UpdateRole", 1)
}
