package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/storage"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 0, '●', core.ColorPurple)
	s.DrawText(0, 1, "cd")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "●") {
		t.Errorf("line 0 = %q, expected ab and the ball", lines[0])
	}
	if !strings.Contains(lines[1], "cd") {
		t.Errorf("line 1 = %q, expected cd", lines[1])
	}
}

func TestTimeRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	rows := timeRows([]storage.TimeEntry{
		{Duration: 4210 * time.Millisecond, Seed: 0.42, Player: "ann", CreatedAt: at},
		{Duration: 5 * time.Second, Seed: 0.5, CreatedAt: at},
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, expected 2", len(rows))
	}
	expected := []string{"#1", "4.21s", "0.420000", "ann", "Mar 04 05:06"}
	for i, v := range expected {
		if rows[0][i] != v {
			t.Errorf("row[0][%d] = %q, expected %q", i, rows[0][i], v)
		}
	}
	if rows[1][3] != "-" {
		t.Errorf("empty player = %q, expected -", rows[1][3])
	}
}
