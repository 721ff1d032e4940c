package server

import (
	"strings"

	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	maxPostContentLen = 50000
	maxPostMediaItems = 10
)

// SearchPosts handles GET /api/forum/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	q := c.Query("q")
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page := parsePagination(c, 10)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postRepo.Search(ctx, q, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/forum/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
		Media   []struct {
			MediaType string `json:"media_type"`
			MediaURL  string `json:"media_url"`
		} `json:"media"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}
	if len(req.Content) > maxPostContentLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content too long (max 50000 characters)"))
	}
	if len(req.Media) > maxPostMediaItems {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Too many media attachments (max 10)"))
	}

	post := &models.Post{
		Content:  req.Content,
		UserID:   userID,
		IsActive: true,
	}
	for _, m := range req.Media {
		if m.MediaURL == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Media URL is required"))
		}
		mediaType := m.MediaType
		if mediaType == "" {
			mediaType = "image"
		}
		post.Media = append(post.Media, models.PostMedia{
			MediaType: mediaType,
			MediaURL:  m.MediaURL,
		})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Reload with author and aggregates for the response
	post, err := s.postRepo.GetByID(ctx, post.ID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/forum/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/forum/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postRepo.GetByID(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userIDParam, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	currentUserID := c.Locals("userID").(uint)

	posts, err := s.postRepo.GetByUserID(ctx, userIDParam, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/forum/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}
	if len(req.Content) > maxPostContentLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content too long (max 50000 characters)"))
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only update your own posts"))
	}

	post.Content = req.Content
	post.IsUpdated = true

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

// SoftDeletePost handles POST /api/forum/posts/:id/deactivate.
// Deactivating an already inactive post is a no-op, not an error.
func (s *Server) SoftDeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	if post.UserID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own posts"))
		}
	}

	if post.IsActive {
		post.IsActive = false
		if err := s.postRepo.Update(ctx, &post); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Post deactivated"})
}

// DeletePost handles DELETE /api/forum/posts/:id. The post, its likes, and its
// comments are removed together.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if post.UserID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own posts"))
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// LikePost handles POST /api/forum/posts/:id/like. Liking a post twice is a
// no-op.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post)
}

// UnlikePost handles DELETE /api/forum/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return c.JSON(post)
}

// GetPostLikes handles GET /api/forum/posts/:id/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"post_id":     postID,
		"likes_count": count,
	})
}

// GetLikedPosts handles GET /api/forum/posts/liked, the current user's liked
// posts newest-like first.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	var posts []*models.Post
	if err := s.db.WithContext(ctx).
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.user_id = ? AND posts.is_active = ?", userID, true).
		Order("post_likes.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Preload("User").
		Preload("Media").
		Find(&posts).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	for _, p := range posts {
		p.Liked = true
	}

	return c.JSON(posts)
}
