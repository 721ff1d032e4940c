package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldbook/internal/config"
	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, query, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func newPostTestApp(mockRepo *MockPostRepository, userID uint) *fiber.App {
	s := &Server{
		config:   &config.Config{},
		postRepo: mockRepo,
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/posts", s.CreatePost)
	app.Get("/posts/:id", s.GetPost)
	app.Put("/posts/:id", s.UpdatePost)
	app.Post("/posts/:id/like", s.LikePost)
	return app
}

func TestCreatePost(t *testing.T) {
	t.Run("missing content", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		app := newPostTestApp(mockRepo, 1)

		resp := postJSON(t, app, "/posts", map[string]string{"content": "   "})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("content too long", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		app := newPostTestApp(mockRepo, 1)

		resp := postJSON(t, app, "/posts", map[string]string{
			"content": strings.Repeat("a", maxPostContentLen+1),
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("success reloads the post with counters", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		app := newPostTestApp(mockRepo, 1)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Post).ID = 9
			}).Return(nil)
		mockRepo.On("GetByID", mock.Anything, uint(9), uint(1)).
			Return(&models.Post{ID: 9, UserID: 1, Content: "Saw a heron at the creek", IsActive: true}, nil)

		resp := postJSON(t, app, "/posts", map[string]string{"content": "Saw a heron at the creek"})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, uint(9), created.ID)
		assert.True(t, created.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("media attachments are stored with the post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		app := newPostTestApp(mockRepo, 1)

		var saved *models.Post
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*models.Post)
				saved.ID = 12
			}).Return(nil)
		mockRepo.On("GetByID", mock.Anything, uint(12), uint(1)).
			Return(&models.Post{ID: 12, UserID: 1, Content: "Tidepool finds", IsActive: true,
				Media: []models.PostMedia{{ID: 1, PostID: 12, MediaType: "image", MediaURL: "/uploads/anemone.jpg"}}}, nil)

		resp := postJSON(t, app, "/posts", map[string]any{
			"content": "Tidepool finds",
			"media":   []map[string]string{{"media_url": "/uploads/anemone.jpg"}},
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		require.NotNil(t, saved)
		require.Len(t, saved.Media, 1)
		assert.Equal(t, "/uploads/anemone.jpg", saved.Media[0].MediaURL)
		// media_type defaults to image when the client omits it
		assert.Equal(t, "image", saved.Media[0].MediaType)
	})

	t.Run("media without a url is rejected", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		app := newPostTestApp(mockRepo, 1)

		resp := postJSON(t, app, "/posts", map[string]any{
			"content": "Tidepool finds",
			"media":   []map[string]string{{"media_type": "image"}},
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetPost_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	// GetPost is public; without an Authorization header the viewer is anonymous.
	mockRepo.On("GetByID", mock.Anything, uint(404), uint(0)).
		Return(nil, models.NewNotFoundError("Post", uint(404)))

	req := httptest.NewRequest(http.MethodGet, "/posts/404", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPost_InvalidID(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_WhitespaceContent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	body, err := json.Marshal(map[string]string{"content": "   "})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/posts/9", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_Ownership(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 2)

	// The post belongs to user 1; caller is user 2.
	mockRepo.On("GetByID", mock.Anything, uint(9), uint(2)).
		Return(&models.Post{ID: 9, UserID: 1, Content: "original", IsActive: true}, nil)

	body, err := json.Marshal(map[string]string{"content": "edited"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/posts/9", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLikePost_Idempotent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 2)

	post := &models.Post{ID: 9, UserID: 1, Content: "heron", IsActive: true, LikesCount: 1, Liked: true}
	mockRepo.On("GetByID", mock.Anything, uint(9), uint(2)).Return(post, nil)
	mockRepo.On("Like", mock.Anything, uint(2), uint(9)).Return(nil)

	// Liking twice must succeed both times and report the same count.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/posts/9/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 1, got.LikesCount)
		assert.True(t, got.Liked)
		_ = resp.Body.Close()
	}
}
