package repository

import (
	"context"
	"regexp"
	"testing"

	"fieldbook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{PostID: 1, UserID: 2, Content: "Nice find!"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_CascadesToReplies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 2)) // replies
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1)) // the comment itself
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(ctx, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_AdjustLikes_ClampedAtZero(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET .*GREATEST\(likes_count \+ \$1, 0\)`).
		WithArgs(-1, sqlmock.AnyArg(), uint(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.AdjustLikes(ctx, 5, -1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
