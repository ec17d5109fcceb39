package lobby

import (
	"fmt"
	"time"
)

// Event is something announced to sessions.
type Event interface {
	// Notice is the one-line text shown to other players.
	Notice() string
}

// PlayerJoinedEvent is sent when a session connects.
type PlayerJoinedEvent struct {
	Player string
	Online int // Sessions connected after the join
}

func (e PlayerJoinedEvent) Notice() string {
	return fmt.Sprintf("%s joined (%d online)", e.Player, e.Online)
}

// PlayerLeftEvent is sent when a session disconnects.
type PlayerLeftEvent struct {
	Player string
	Online int
}

func (e PlayerLeftEvent) Notice() string {
	return fmt.Sprintf("%s left (%d online)", e.Player, e.Online)
}

// RunFinishedEvent is sent when a player completes a course.
type RunFinishedEvent struct {
	Player     string
	CourseID   string
	CourseName string
	Seed       float64
	Duration   time.Duration
	LayoutBest bool // Fastest recorded time on this layout
}

func (e RunFinishedEvent) Notice() string {
	name := e.CourseName
	if name == "" {
		name = e.CourseID
	}
	notice := fmt.Sprintf("%s finished %s in %.2fs", e.Player, name, e.Duration.Seconds())
	if e.LayoutBest {
		notice += " - layout record!"
	}
	return notice
}
