package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a learner account.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a server-side login session. The session credential handed to
// clients is a signed token that references Session.ID.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// BelongsTo reports whether the session was issued to learnerID.
func (s Session) BelongsTo(learnerID uuid.UUID) bool {
	return s.UserID == learnerID
}
