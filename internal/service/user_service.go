package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("no user found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const bcryptCost = 10

// UserService handles registration and login. No session or token is
// issued; every request authenticates independently.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. Email
// uniqueness is enforced by the database index; the unique violation from
// the insert is the conflict signal, so two racing registrations cannot
// both succeed.
func (s *UserService) Register(ctx context.Context, name, email, password string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return dom.User{}, ErrMissingCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, name, email, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login verifies the password against the stored hash and returns the
// user. An unknown email is ErrUserNotFound; a wrong password is always
// ErrInvalidCredentials, never not-found.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrMissingCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}
