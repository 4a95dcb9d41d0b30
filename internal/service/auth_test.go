package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository"
)

func notFoundUser() (domain.User, error) {
	return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", repository.ErrUserNotFound)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("user role with hashed password", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo, []string{"boss@example.com"})

		repo.On("FindByName", ctx, "alice").Return(notFoundUser())
		repo.On("FindByEmail", ctx, "alice@example.com").Return(notFoundUser())
		repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Role == domain.RoleUser &&
				u.Email == "alice@example.com" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
		})).Return(domain.User{ID: 1, Name: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil)

		user, err := svc.Register(ctx, domain.User{Name: "alice", Email: " Alice@Example.com ", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("manager email gets the manager role", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo, []string{"Boss@Example.com"})

		repo.On("FindByName", ctx, "boss").Return(notFoundUser())
		repo.On("FindByEmail", ctx, "boss@example.com").Return(notFoundUser())
		repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Role == domain.RoleManager
		})).Return(domain.User{ID: 2, Role: domain.RoleManager}, nil)

		user, err := svc.Register(ctx, domain.User{Name: "boss", Email: "boss@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, user.IsManager())
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo, nil)
		repo.On("FindByName", ctx, "alice").Return(domain.User{ID: 1}, nil)

		_, err := svc.Register(ctx, domain.User{Name: "alice", Email: "new@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrUserNameExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo, nil)
		repo.On("FindByName", ctx, "alice").Return(notFoundUser())
		repo.On("FindByEmail", ctx, "alice@example.com").Return(domain.User{ID: 1}, nil)

		_, err := svc.Register(ctx, domain.User{Name: "alice", Email: "ALICE@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: 1, Email: "alice@example.com", Password: string(hash), Role: domain.RoleUser}

	repo := &mockUserRepo{}
	repo.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)
	repo.On("FindByEmail", ctx, "nobody@example.com").Return(notFoundUser())
	svc := NewAuthService(repo, nil)

	user, err := svc.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Availability(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, nil)

	repo.On("FindByEmail", ctx, "alice@example.com").Return(domain.User{ID: 1}, nil)
	repo.On("FindByEmail", ctx, "new@example.com").Return(notFoundUser())
	repo.On("FindByName", ctx, "alice").Return(domain.User{ID: 1}, nil)
	repo.On("FindByName", ctx, "carol").Return(notFoundUser())
	repo.On("FindByName", ctx, "broken").Return(domain.User{}, assert.AnError)

	exists, err := svc.EmailExists(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailExists(ctx, "new@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = svc.NameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.NameExists(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.NameExists(ctx, "broken")
	assert.ErrorIs(t, err, assert.AnError)
}
