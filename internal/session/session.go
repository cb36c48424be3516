// Package session carries the identity of the acting operator through an
// application run. A Session is an explicit value handed to the layers
// that need it; there is no ambient global user state.
package session

import (
	"time"

	"loadtrack/internal/model"
)

// Session identifies who is operating the station for one logical run.
type Session struct {
	User      model.User
	StartedAt time.Time
}

// New opens a session for the given user.
func New(user model.User) *Session {
	return &Session{User: user, StartedAt: time.Now()}
}

// Operator returns the acting username, or "unknown" for a nil session.
func (s *Session) Operator() string {
	if s == nil || s.User.Username == "" {
		return "unknown"
	}
	return s.User.Username
}
