package lobby

import (
	"strings"
	"testing"
	"time"
)

func TestRoomJoinAnnounces(t *testing.T) {
	r := NewRoom()
	ann := NewMailbox("a", "ann", 4)
	bob := NewMailbox("b", "bob", 4)

	if n := r.Join(ann); n != 1 {
		t.Errorf("Join(ann) = %d, expected 1", n)
	}
	if n := r.Join(bob); n != 2 {
		t.Errorf("Join(bob) = %d, expected 2", n)
	}

	if len(bob.Announcements()) != 0 {
		t.Error("joining player should not hear its own join")
	}
	select {
	case evt := <-ann.Announcements():
		if evt.Notice() != "bob joined (2 online)" {
			t.Errorf("Notice() = %q", evt.Notice())
		}
	default:
		t.Fatal("ann should hear bob join")
	}
}

func TestRoomAnnounceSkipsSender(t *testing.T) {
	r := NewRoom()
	a := NewMailbox("a", "ann", 4)
	b := NewMailbox("b", "bob", 4)
	c := NewMailbox("c", "cat", 4)
	r.Join(a)
	r.Join(b)
	r.Join(c)
	drain(a, b, c)

	sent := r.Announce(RunFinishedEvent{Player: "ann", CourseID: "marble", Duration: time.Second}, "a")
	if sent != 2 {
		t.Errorf("Announce() = %d, expected 2", sent)
	}
	if len(a.Announcements()) != 0 {
		t.Error("sender should not receive its own announcement")
	}
	if len(b.Announcements()) != 1 || len(c.Announcements()) != 1 {
		t.Error("other players should receive the announcement")
	}
}

func TestRoomSkipsClosedMembers(t *testing.T) {
	r := NewRoom()
	a := NewMailbox("a", "ann", 4)
	b := NewMailbox("b", "bob", 4)
	r.Join(a)
	r.Join(b)
	b.Close()

	if sent := r.Announce(PlayerJoinedEvent{Player: "x"}, "x"); sent != 1 {
		t.Errorf("Announce() = %d, expected 1 with bob disconnected", sent)
	}
}

func TestRoomLeave(t *testing.T) {
	r := NewRoom()
	a := NewMailbox("a", "ann", 4)
	b := NewMailbox("b", "bob", 4)
	r.Join(a)
	r.Join(b)
	drain(a, b)

	if n := r.Leave("a"); n != 1 {
		t.Errorf("Leave() = %d, expected 1", n)
	}
	if n := r.Leave("a"); n != 1 {
		t.Errorf("second Leave() = %d, expected 1", n)
	}

	if got := len(b.Announcements()); got != 1 {
		t.Fatalf("bob heard %d announcements, expected 1", got)
	}
	if evt := <-b.Announcements(); evt.Notice() != "ann left (1 online)" {
		t.Errorf("Notice() = %q", evt.Notice())
	}
	if sent := r.Announce(PlayerJoinedEvent{Player: "x"}, "x"); sent != 1 {
		t.Errorf("Announce() after leave = %d, expected 1", sent)
	}
}

func TestRunFinishedNotice(t *testing.T) {
	e := RunFinishedEvent{Player: "ann", CourseID: "marble_sprint", Duration: 4210 * time.Millisecond}
	if got := e.Notice(); got != "ann finished marble_sprint in 4.21s" {
		t.Errorf("Notice() = %q", got)
	}

	e.CourseName = "Marble Sprint"
	e.LayoutBest = true
	if got := e.Notice(); !strings.HasPrefix(got, "ann finished Marble Sprint") || !strings.HasSuffix(got, "record!") {
		t.Errorf("Notice() = %q", got)
	}
}

func TestNewSessionID(t *testing.T) {
	at := time.Unix(0, 42)
	if id := NewSessionID("ann", at); id != "ann-42" {
		t.Errorf("NewSessionID() = %q, expected ann-42", id)
	}
}

func drain(boxes ...*Mailbox) {
	for _, b := range boxes {
		for len(b.Announcements()) > 0 {
			<-b.Announcements()
		}
	}
}
