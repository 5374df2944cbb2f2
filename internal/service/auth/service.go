package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/auth"
	"github.com/heartmarshall/lingua-tutor-backend/internal/config"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// sessionRepo defines the session repository interface needed by auth service.
type sessionRepo interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// tokenManager signs and verifies session tokens.
type tokenManager interface {
	GenerateSessionToken(sessionID, userID uuid.UUID, expiresAt time.Time) (string, error)
	ValidateSessionToken(token string) (auth.SessionClaims, error)
}

// Service implements account and session operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	sessions sessionRepo
	tx       txManager
	tokens   tokenManager
	cfg      config.AuthConfig
	now      func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	sessions sessionRepo,
	tx txManager,
	tokens tokenManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		sessions: sessions,
		tx:       tx,
		tokens:   tokens,
		cfg:      cfg,
		now:      time.Now,
	}
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// openSession stores a new session row for user and signs its token.
func (s *Service) openSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	now := s.now()
	sess, err := s.sessions.Create(ctx, &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(sess.ID, sess.UserID, sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &AuthResult{Token: token, ExpiresAt: sess.ExpiresAt, User: user}, nil
}
