package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fieldbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	listRepliesFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	adjustLikesFn func(context.Context, uint, int) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) AdjustLikes(ctx context.Context, id uint, delta int) error {
	return s.adjustLikesFn(ctx, id, delta)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		adjustLikesFn: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	searchFn      func(context.Context, string, int, int, uint) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listFn:        func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn:      func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		isLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:        func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:      func(_ context.Context, _, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func uintPtr(v uint) *uint { return &v }

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCommentInput
	}{
		{
			name:  "empty content",
			input: CreateCommentInput{UserID: 1, PostID: 1},
		},
		{
			name:  "whitespace content",
			input: CreateCommentInput{UserID: 1, PostID: 1, Content: "   "},
		},
		{
			name:  "content too long",
			input: CreateCommentInput{UserID: 1, PostID: 1, Content: strings.Repeat("x", 10001)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateComment(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestCommentService_CreateComment_MissingPost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewCommentService(noopCommentRepo(), posts, nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hello"})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentService_CreateComment_Threading(t *testing.T) {
	t.Parallel()

	t.Run("reply to comment on another post", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 2}, nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 1, ParentID: uintPtr(7), Content: "reply",
		})
		assertValidationError(t, err)
	})

	t.Run("reply to a reply", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, ParentID: uintPtr(3)}, nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 1, ParentID: uintPtr(7), Content: "reply",
		})
		assertValidationError(t, err)
	})

	t.Run("valid reply is created with parent set", func(t *testing.T) {
		t.Parallel()
		var created *models.Comment
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1}, nil
		}
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			created = c
			return nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 1, ParentID: uintPtr(7), Content: "reply",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, created.ParentID)
		assert.Equal(t, uint(7), *created.ParentID)
	})
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot update", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 10}, nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "new"})
		assertUnauthorizedError(t, err)
	})

	t.Run("owner can update content", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, Content: "old"}, nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", comment.Content)
	})
}

func TestCommentService_DeleteComment_Ownership(t *testing.T) {
	t.Parallel()

	ownedByOther := func() *commentRepoStub {
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 10}, nil
		}
		return comments
	}

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}
		svc := NewCommentService(comments, noopPostRepo(), nil)
		assert.NoError(t, svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1}))
	})

	t.Run("non-owner without isAdmin returns unauthorized", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(ownedByOther(), noopPostRepo(), nil)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		assertUnauthorizedError(t, err)
	})

	t.Run("admin can delete another user's comment", func(t *testing.T) {
		t.Parallel()
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewCommentService(ownedByOther(), noopPostRepo(), isAdmin)
		assert.NoError(t, svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1}))
	})

	t.Run("non-admin cannot delete another user's comment", func(t *testing.T) {
		t.Parallel()
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewCommentService(ownedByOther(), noopPostRepo(), isAdmin)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		assertUnauthorizedError(t, err)
	})
}

func TestCommentService_LikeUnlike_AdjustsCounter(t *testing.T) {
	t.Parallel()

	var deltas []int
	comments := noopCommentRepo()
	comments.adjustLikesFn = func(_ context.Context, _ uint, delta int) error {
		deltas = append(deltas, delta)
		return nil
	}
	svc := NewCommentService(comments, noopPostRepo(), nil)
	ctx := context.Background()

	_, err := svc.LikeComment(ctx, 5)
	require.NoError(t, err)
	_, err = svc.UnlikeComment(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, []int{1, -1}, deltas)
}

func TestCommentService_LikeComment_MissingComment(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment", id)
	}
	adjusted := false
	comments.adjustLikesFn = func(_ context.Context, _ uint, _ int) error {
		adjusted = true
		return nil
	}
	svc := NewCommentService(comments, noopPostRepo(), nil)

	_, err := svc.LikeComment(context.Background(), 99)
	require.Error(t, err)
	assert.False(t, adjusted, "counter must not move for a missing comment")
}
