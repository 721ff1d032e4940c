package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldbook/internal/config"
	"fieldbook/internal/models"
	"fieldbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockResourceRepository is a mock of the ResourceRepository interface
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id uint) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

func (m *MockResourceRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Resource, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Resource), args.Error(1)
}

func (m *MockResourceRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Resource, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]*models.Resource), args.Error(1)
}

func (m *MockResourceRepository) ByCategory(ctx context.Context, category string) ([]*models.Resource, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*models.Resource), args.Error(1)
}

func (m *MockResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newResourceTestApp wires CreateResource and DeleteResource behind a stubbed
// authenticated user.
func newResourceTestApp(mockRepo *MockResourceRepository, userID uint) *fiber.App {
	s := &Server{
		config:          &config.Config{},
		resourceService: service.NewResourceService(mockRepo, nil),
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/create", s.CreateResource)
	app.Delete("/:resourceId/:userId", s.DeleteResource)
	return app
}

func TestCreateResource_RequiredFields(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"title":       "Free produce stand",
			"description": "Surplus vegetables every Saturday morning.",
			"link":        "https://example.org/produce",
			"category":    "Food",
			"end_time":    time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		}
	}

	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"missing title", func(m map[string]any) { delete(m, "title") }},
		{"missing description", func(m map[string]any) { delete(m, "description") }},
		{"missing link", func(m map[string]any) { delete(m, "link") }},
		{"invalid link", func(m map[string]any) { m["link"] = "not a url" }},
		{"missing category", func(m map[string]any) { delete(m, "category") }},
		{"missing end time", func(m map[string]any) { delete(m, "end_time") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockResourceRepository)
			app := newResourceTestApp(mockRepo, 1)

			body := valid()
			tt.mutate(body)

			resp := postJSON(t, app, "/create", body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateResource_Success(t *testing.T) {
	mockRepo := new(MockResourceRepository)
	app := newResourceTestApp(mockRepo, 42)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Resource")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Resource).ID = 5
		}).Return(nil)

	resp := postJSON(t, app, "/create", map[string]any{
		"title":       "Free produce stand",
		"description": "Surplus vegetables every Saturday morning.",
		"link":        "https://example.org/produce",
		"category":    "  Food ",
		"end_time":    time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Resource
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, uint(5), created.ID)
	assert.Equal(t, uint(42), created.UserID)
	assert.Equal(t, "food", created.Category)
	mockRepo.AssertExpectations(t)
}

func TestDeleteResource_PathUserMismatch(t *testing.T) {
	mockRepo := new(MockResourceRepository)
	app := newResourceTestApp(mockRepo, 42)

	// Authenticated as user 42 but the path claims user 7.
	req := httptest.NewRequest(http.MethodDelete, "/5/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteResource_Owner(t *testing.T) {
	mockRepo := new(MockResourceRepository)
	app := newResourceTestApp(mockRepo, 42)

	mockRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Resource{ID: 5, UserID: 42}, nil)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/5/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}
