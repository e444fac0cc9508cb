package service

import (
	"context"
	"errors"
	"strings"

	dom "blogapp/internal/domain"
	"blogapp/internal/repo"
	"blogapp/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidLogin  = errors.New("invalid login")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService handles signup and login.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Login looks the user up by username and compares the password as-is.
// A missing user and a wrong password both come back as ErrInvalidLogin
// so the form cannot tell which field failed.
func (s *UserService) Login(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidLogin
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidLogin
		}
		return dom.User{}, err
	}
	if u.Password != password {
		return dom.User{}, ErrInvalidLogin
	}
	return u, nil
}

// SignUp creates a new user. Uniqueness rides on the users.username
// UNIQUE constraint, so concurrent signups cannot both win.
func (s *UserService) SignUp(ctx context.Context, username, password, email string) (dom.User, error) {
	username = strings.TrimSpace(username)
	u, err := s.repo.Create(ctx, username, password, email)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}
