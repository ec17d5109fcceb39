package lobby

import "sync"

// Member is a connected player as the room sees it. *Mailbox implements it.
type Member interface {
	ID() SessionID
	Player() string
	Post(evt Event) bool
	Closed() <-chan struct{}
}

// Room is the set of players on one server. Joining and leaving are
// announced to everyone else; other announcements are relayed by Announce.
type Room struct {
	mu      sync.Mutex
	members map[SessionID]Member
}

// NewRoom creates an empty room.
func NewRoom() *Room {
	return &Room{members: make(map[SessionID]Member)}
}

// Join adds m and announces it to the other members. Returns the number of
// players online afterwards.
func (r *Room) Join(m Member) int {
	r.mu.Lock()
	r.members[m.ID()] = m
	online := len(r.members)
	r.mu.Unlock()

	r.Announce(PlayerJoinedEvent{Player: m.Player(), Online: online}, m.ID())
	return online
}

// Leave removes the member with id and announces the departure. Leaving
// twice announces once.
func (r *Room) Leave(id SessionID) int {
	r.mu.Lock()
	m, ok := r.members[id]
	delete(r.members, id)
	online := len(r.members)
	r.mu.Unlock()

	if ok {
		r.Announce(PlayerLeftEvent{Player: m.Player(), Online: online}, id)
	}
	return online
}

// Announce posts evt to every open member except from and returns how many
// accepted it. Posting happens outside the lock.
func (r *Room) Announce(evt Event, from SessionID) int {
	r.mu.Lock()
	recipients := make([]Member, 0, len(r.members))
	for id, m := range r.members {
		if id != from {
			recipients = append(recipients, m)
		}
	}
	r.mu.Unlock()

	delivered := 0
	for _, m := range recipients {
		select {
		case <-m.Closed():
			continue
		default:
		}
		if m.Post(evt) {
			delivered++
		}
	}
	return delivered
}
