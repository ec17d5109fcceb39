package lobby

import "sync"

// Mailbox buffers announcements for one connected player until the player's
// UI picks them up. A player who falls behind loses the oldest
// announcements first.
type Mailbox struct {
	id     SessionID
	player string
	queue  chan Event
	closed chan struct{}
	once   sync.Once
}

// NewMailbox creates a mailbox holding up to capacity announcements.
func NewMailbox(id SessionID, player string, capacity int) *Mailbox {
	if capacity < 1 {
		capacity = 16
	}
	return &Mailbox{
		id:     id,
		player: player,
		queue:  make(chan Event, capacity),
		closed: make(chan struct{}),
	}
}

func (m *Mailbox) ID() SessionID           { return m.id }
func (m *Mailbox) Player() string          { return m.player }
func (m *Mailbox) Closed() <-chan struct{} { return m.closed }

// Announcements is read by the session's UI loop.
func (m *Mailbox) Announcements() <-chan Event { return m.queue }

// Post queues evt without blocking. It reports false once the mailbox is
// closed.
func (m *Mailbox) Post(evt Event) bool {
	select {
	case <-m.closed:
		return false
	default:
	}

	for attempt := 0; attempt < 2; attempt++ {
		select {
		case m.queue <- evt:
			return true
		default:
		}
		select {
		case <-m.queue:
		default:
		}
	}
	return false
}

// Close stops delivery. Safe to call more than once.
func (m *Mailbox) Close() {
	m.once.Do(func() { close(m.closed) })
}
