package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/session"
	"github.com/hms/hms/internal/platform/validate"
)

// ErrInvalidCredentials is returned on login when the email is unknown or the
// password does not match. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registration uses an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

type Service struct {
	users    UserRepository
	sessions session.Store
	ttl      time.Duration

	now func() time.Time
}

func NewService(users UserRepository, sessions session.Store, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register creates a new user account and logs it in, returning the user and
// a fresh session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, *session.Session, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}

	role := in.Role
	if role == "" {
		role = DefaultRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.startSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// Login verifies credentials and returns the user with a fresh session.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, *session.Session, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if db.IsNotFound(err) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if !CheckPassword(u.PasswordHash, in.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.startSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// Logout revokes the session identified by token. Revoking an unknown token
// is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser loads the account behind an authenticated session.
func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) startSession(ctx context.Context, u *User) (*session.Session, error) {
	token, err := session.NewToken()
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		Token:     token,
		UserID:    u.ID,
		Role:      u.Role,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}
