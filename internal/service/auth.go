package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository"
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
}

type AuthService struct {
	repo          AuthUserRepository
	managerEmails map[string]struct{}
}

func NewAuthService(repo AuthUserRepository, managerEmails []string) *AuthService {
	emails := make(map[string]struct{}, len(managerEmails))
	for _, e := range managerEmails {
		emails[domain.NormalizeEmail(e)] = struct{}{}
	}

	return &AuthService{
		repo:          repo,
		managerEmails: emails,
	}
}

// Register creates a user account. Accounts whose email is listed as a manager email
// get the manager role.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = domain.NormalizeEmail(user.Email)

	if err := s.checkNameExists(ctx, user.Name); err != nil {
		return domain.User{}, err
	}
	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashPassword -> %w", err)
	}
	user.Password = hashedPassword

	user.Role = domain.RoleUser
	if _, ok := s.managerEmails[user.Email]; ok {
		user.Role = domain.RoleManager
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("user registered", zap.Uint("user_id", created.ID), zap.String("role", string(created.Role)))

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// EmailExists reports whether an account already uses the email, compared case-insensitively.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return false, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return false, nil
}

func (s *AuthService) NameExists(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return false, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	return false, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	exists, err := s.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserEmailExists
	}

	return nil
}

func (s *AuthService) checkNameExists(ctx context.Context, name string) error {
	exists, err := s.NameExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserNameExists
	}

	return nil
}
