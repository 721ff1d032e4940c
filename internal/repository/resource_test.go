package repository

import (
	"context"
	"regexp"
	"testing"

	"fieldbook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestResourceRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	resource := &models.Resource{
		UserID:      1,
		Title:       "River monitoring handbook",
		Description: "How to take water samples",
		Link:        "https://example.org/handbook",
		Category:    "guides",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "resources"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, resource)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepository_Search_SubstringMatch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "resources" WHERE .*title ILIKE .+ OR description ILIKE .+`).
		WithArgs("%water%", "%water%", true, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(1, "Water sampling kit list").
			AddRow(2, "Groundwater basics"))

	resources, err := repo.Search(ctx, "water", 20, 0)
	assert.NoError(t, err)
	assert.Len(t, resources, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepository_ByCategory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resources" WHERE (category = $1 AND is_active = $2)`)).
		WithArgs("guides", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "category"}).
			AddRow(1, "Handbook", "guides"))

	resources, err := repo.ByCategory(ctx, "guides")
	assert.NoError(t, err)
	assert.Len(t, resources, 1)
	assert.Equal(t, "guides", resources[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resources" WHERE "resources"."id" = $1`)).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	resource, err := repo.GetByID(ctx, 99)
	assert.Error(t, err)
	assert.Nil(t, resource)
	assert.NoError(t, mock.ExpectationsWereMet())
}
