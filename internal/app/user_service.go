package app

import (
	"context"
	"errors"

	"github.com/lamergameryt/entrypoint/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account in the default user group. Passwords are
// stored as bcrypt hashes only.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if in.Name == "" {
		return domain.User{}, domain.ErrUserNameRequired
	}
	if in.Email == "" {
		return domain.User{}, domain.ErrEmailRequired
	}
	if in.Password == "" {
		return domain.User{}, domain.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Group:        domain.GroupUser,
	}
	return s.repo.CreateUser(ctx, user)
}

// Login verifies credentials and returns the matching user. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}
