// Package session tracks the authoring session stamped on export rows.
//
// Every export row carries a session id and an account id so downstream
// consumers can tell which editing session a document came from. Within one
// session the id stays stable across exports; a new session starts when the
// previous one expires or the account changes.
//
// # Usage
//
//	store, err := session.NewFileStore("")  // Uses ~/.config/flowcopy/
//	if err != nil { ... }
//	sess, err := store.Current("acct-42")
//	// sess.ID goes into the session_id column
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the default session duration. Long enough to span an editing
// sitting, short enough that documents from different days get distinct ids.
const DefaultTTL = 12 * time.Hour

// Session identifies one editing session.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// New creates a session for the given account.
func New(accountID string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
