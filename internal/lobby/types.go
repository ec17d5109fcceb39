// Package lobby tracks the players connected to a shared server and fans
// run announcements out to them. Simulations stay local to each session;
// only finished-run notices travel between sessions.
package lobby

import (
	"fmt"
	"time"
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID builds a session ID from a user name and the connect time.
func NewSessionID(user string, at time.Time) SessionID {
	return SessionID(fmt.Sprintf("%s-%d", user, at.UnixNano()))
}
