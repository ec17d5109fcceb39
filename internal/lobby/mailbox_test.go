package lobby

import "testing"

func TestMailboxPostReceive(t *testing.T) {
	box := NewMailbox("a", "ann", 4)
	if !box.Post(PlayerJoinedEvent{Player: "bob", Online: 2}) {
		t.Fatal("Post on an open mailbox should succeed")
	}

	select {
	case evt := <-box.Announcements():
		if evt.Notice() != "bob joined (2 online)" {
			t.Errorf("Notice() = %q", evt.Notice())
		}
	default:
		t.Fatal("expected a queued announcement")
	}
}

func TestMailboxDropsOldest(t *testing.T) {
	box := NewMailbox("a", "ann", 2)
	for _, p := range []string{"one", "two", "three"} {
		if !box.Post(PlayerJoinedEvent{Player: p}) {
			t.Errorf("Post(%s) refused", p)
		}
	}

	first := (<-box.Announcements()).(PlayerJoinedEvent)
	second := (<-box.Announcements()).(PlayerJoinedEvent)
	if first.Player != "two" || second.Player != "three" {
		t.Errorf("received %s, %s; expected two, three", first.Player, second.Player)
	}
}

func TestMailboxClosed(t *testing.T) {
	box := NewMailbox("a", "ann", 2)
	box.Close()
	box.Close()

	if box.Post(PlayerJoinedEvent{Player: "late"}) {
		t.Error("Post after Close should be refused")
	}
	if n := len(box.Announcements()); n != 0 {
		t.Errorf("queued = %d, expected 0", n)
	}
	select {
	case <-box.Closed():
	default:
		t.Error("Closed() should be closed")
	}
}

func TestMailboxDefaultCapacity(t *testing.T) {
	box := NewMailbox("a", "ann", 0)
	if c := cap(box.Announcements()); c != 16 {
		t.Errorf("capacity = %d, expected 16", c)
	}
}
