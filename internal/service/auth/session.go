package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// sessionGrace absorbs clock skew between token expiry and row expiry.
const sessionGrace = time.Second

// ResolveSession verifies a session token and returns the live session row.
// An invalid, expired or revoked token yields ErrUnauthorized.
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "session token rejected", slog.String("error", err.Error()))
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.ResolveSession: %w", err)
	}

	if !sess.BelongsTo(claims.UserID) || sess.Expired(s.now().Add(-sessionGrace)) {
		return nil, domain.ErrUnauthorized
	}

	return sess, nil
}

// ValidateToken resolves a bearer token to the learner id it was issued to.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	sess, err := s.ResolveSession(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return sess.UserID, nil
}

// Session returns the account behind a session token.
func (s *Service) Session(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	sess, err := s.ResolveSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("auth.Session: %w", err)
	}

	return user, sess, nil
}

// Logout revokes the session behind token. Logging out an already revoked
// session is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return domain.ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out",
		slog.String("user_id", claims.UserID.String()))

	return nil
}
