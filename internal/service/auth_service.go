package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pwdassist/internal/auth"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
)

// MinPasswordLength is the minimum accepted plaintext password length,
// enforced before hashing.
const MinPasswordLength = 6

// ErrInvalidCredentials is returned when the login name or password is
// incorrect. One generic signal for both cases; which field was wrong is
// never revealed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// SignupInput carries the signup form fields.
type SignupInput struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService handles signup, login and logout. Both signup and login end in
// an identically shaped session; signup implies login.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, string, error)
	Login(ctx context.Context, login, password string) (*model.User, string, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	users    repository.UserRepository
	sessions auth.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions auth.Store) AuthService {
	return &authService{users: users, sessions: sessions}
}

// Signup validates input, creates the user and establishes a session.
// A duplicate username or email surfaces as apperrors.ErrDuplicate, distinct
// from generic failure, and leaves no row behind.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, string, error) {
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FullName:     in.FullName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         string(auth.ParseRole(in.Role)),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrDuplicate
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	sessionID, err := s.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// Login authenticates by username or email and establishes a fresh session.
// Username takes precedence over email when both could match.
func (s *authService) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, login)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("find user: %w", err)
		}
		user, err = s.users.FindByEmail(ctx, login)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidCredentials
			}
			return nil, "", fmt.Errorf("find user: %w", err)
		}
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	sessionID, err := s.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// Logout destroys the session. Destroying an already absent session is fine;
// a logout racing an in-flight request may resolve in either order.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}

func (s *authService) createSession(ctx context.Context, user *model.User) (string, error) {
	sessionID, err := s.sessions.Create(ctx, auth.Session{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     auth.Role(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return sessionID, nil
}
