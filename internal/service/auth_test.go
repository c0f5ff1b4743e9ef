package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/service"
	"github.com/mowistore/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	nextID       int64
	err          error
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.usersByEmail))
	for _, user := range f.usersByEmail {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = f.nextID
	f.nextID++
	user.DateJoined = time.Now()
	f.usersByEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	for email, user := range f.usersByEmail {
		if user.ID == id {
			delete(f.usersByEmail, email)
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), "Ana@Example.com", "Ana", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotZero(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PassHash, []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "secret123")
	assert.NoError(t, err)

	// Case-insensitive: the second registration collides with the first.
	_, err = svc.Register(context.Background(), "ANA@example.com", "Ana", "otherpass")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegister_RepoError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("db down")
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "secret123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "secret123")
	assert.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "secret123")
	assert.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "ana@example.com", "wrongpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := service.NewAuthService(discardLogger(), newFakeUserRepo(), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(discardLogger(), repo, "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), "ana@example.com", "Ana", "secret123")
	assert.NoError(t, err)
	user.IsActive = false

	_, _, err = svc.Login(context.Background(), "ana@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrAccountDisabled)
}
