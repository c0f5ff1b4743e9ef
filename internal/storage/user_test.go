package storage_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/stretchr/testify/assert"
)

var userCols = []string{"id", "email", "name", "pass_hash", "is_active", "is_staff", "is_admin", "date_joined"}

func TestGetUserByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	joined := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT id, email, name, pass_hash, is_active, is_staff, is_admin, date_joined FROM users WHERE email = $1")
	rows := sqlmock.NewRows(userCols).
		AddRow(1, "ana@example.com", "Ana", []byte("hash"), true, false, false, joined)
	mock.ExpectQuery(query).WithArgs("ana@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.True(t, user.IsActive)
	assert.Equal(t, joined, user.DateJoined)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("SELECT id, email, name, pass_hash, is_active, is_staff, is_admin, date_joined FROM users WHERE email = $1")
	mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnRows(sqlmock.NewRows(userCols))

	user, err := repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	joined := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("INSERT INTO users (email, name, pass_hash, is_active, is_staff, is_admin, date_joined)")
	mock.ExpectQuery(query).
		WithArgs("ana@example.com", "Ana", []byte("hash"), true, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date_joined"}).AddRow(5, joined))

	user, err := repo.CreateUser(ctx, &models.User{
		Email:    "ana@example.com",
		Name:     "Ana",
		PassHash: []byte("hash"),
		IsActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, joined, user.DateJoined)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("DELETE FROM users WHERE id = $1")
	mock.ExpectExec(query).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteUser(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
