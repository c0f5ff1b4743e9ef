package storage_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestListCategories_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("SELECT id, name, description FROM categories ORDER BY name")
	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(2, "Accesorios", "Complementos").
		AddRow(1, "Ropa", nil)
	mock.ExpectQuery(query).WillReturnRows(rows)

	categories, err := repo.ListCategories(ctx)
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Accesorios", categories[0].Name)
	assert.Nil(t, categories[1].Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoryByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("SELECT id, name, description FROM categories WHERE id = $1")
	mock.ExpectQuery(query).WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	category, err := repo.GetCategoryByID(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrCategoryNotFound)
	assert.Nil(t, category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategory_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)
	ctx := context.Background()

	desc := "Complementos"
	query := regexp.QuoteMeta("INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id")
	mock.ExpectQuery(query).
		WithArgs("Accesorios", "Complementos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	category, err := repo.CreateCategory(ctx, &models.Category{Name: "Accesorios", Description: &desc})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), category.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCategory_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("UPDATE categories SET name = $1, description = $2 WHERE id = $3")
	mock.ExpectExec(query).
		WithArgs("Ropa", nil, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateCategory(ctx, &models.Category{ID: 99, Name: "Ropa"})
	assert.ErrorIs(t, err, storage.ErrCategoryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategory_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCategoryRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")
	mock.ExpectExec(query).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DeleteCategory(ctx, 3)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
