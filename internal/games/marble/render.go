package marble

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
	"github.com/vovakirdan/marble-run/internal/games/marble/state"
	"github.com/vovakirdan/marble-run/internal/physics"
)

// Visual characters for rendering
const (
	BallChar    = '●'
	FloorChar   = '·'
	StartChar   = '░'
	GoalPadChar = '▒'
	WallChar    = '█'
	SpinnerChar = '='
	LimboChar   = '≡'
	AxeChar     = '▓'
	SliderChar  = '▬'
	GoalChar    = '◆'
)

// Top-down projection scale: screen cells per metre.
const (
	colsPerMetre = 4.0
	rowsPerMetre = 2.0
	lookAhead    = 2.0 // metres the view is shifted down-course
	hudRows      = 1
	hintRows     = 1
)

// Render draws a top-down view of the course around the camera target.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	top := hudRows
	bottom := h - hintRows
	if bottom <= top || w <= 0 {
		return
	}

	focus := g.rig.State().Target
	centerCol := float64(w) / 2
	centerRow := float64(top+bottom) / 2
	ball := g.course.ball.Translation()

	for y := top; y < bottom; y++ {
		for x := 0; x < w; x++ {
			p := mgl64.Vec3{
				focus.X() + (float64(x)+0.5-centerCol)/colsPerMetre,
				0,
				focus.Z() - lookAhead + (float64(y)+0.5-centerRow)/rowsPerMetre,
			}
			if r, c, ok := g.cellAt(p, ball); ok {
				dst.SetColored(x, y, r, c)
			}
		}
	}

	g.drawHUD(dst)

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.machine.Phase() == state.Ended:
		sub := "R restart"
		if g.Qualified() {
			sub += "  |  N next course"
		}
		elapsed := g.machine.Elapsed()
		drawCenteredMessage(dst, "FINISHED "+formatDuration(elapsed), sub)
	}
}

// cellAt picks what is visible at ground point p, topmost first.
func (g *Game) cellAt(p, ball mgl64.Vec3) (rune, core.Color, bool) {
	radius := g.cfg.Player.Radius
	if ball.Y() > g.cfg.Player.FailHeight/2 {
		dx, dz := p.X()-ball.X(), p.Z()-ball.Z()
		if dx*dx+dz*dz <= radius*radius*1.6 {
			return BallChar, core.ColorWhite, true
		}
	}

	for _, pt := range g.course.parts {
		if pt.floor || !covers(pt.body, p) {
			continue
		}
		switch pt.kind {
		case obstacle.Spinner:
			return SpinnerChar, core.ColorRed, true
		case obstacle.Limbo:
			// Dimmed while the bar is high enough to roll under.
			underside := pt.body.Translation().Y() - pt.base.Y() - pt.body.Shape().HalfExtents.Y()
			if underside > 2*radius {
				return LimboChar, core.ColorPurple, true
			}
			return LimboChar, core.ColorMagenta, true
		case obstacle.Axe:
			return AxeChar, core.ColorOrange, true
		case obstacle.Slider:
			return SliderChar, core.ColorCyan, true
		case obstacle.Goal:
			return GoalChar, core.ColorBrightYellow, true
		}
	}

	for _, wall := range g.course.walls {
		if covers(wall, p) {
			return WallChar, core.ColorGray, true
		}
	}

	for _, pt := range g.course.parts {
		if !pt.floor || !covers(pt.body, p) {
			continue
		}
		switch pt.kind {
		case obstacle.Start:
			return StartChar, core.ColorGreen, true
		case obstacle.Goal:
			return GoalPadChar, core.ColorYellow, true
		default:
			return FloorChar, core.ColorGray, true
		}
	}

	return 0, core.ColorDefault, false
}

// covers reports whether the horizontal footprint of a box body contains p.
func covers(b physics.BodyRef, p mgl64.Vec3) bool {
	shape := b.Shape()
	if shape.Kind != physics.ShapeBox {
		return false
	}
	pose := b.Pose()
	q := p
	q[1] = pose.Position.Y()

	rot := pose.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	local := rot.Inverse().Rotate(q.Sub(pose.Position))
	he := shape.HalfExtents
	return math.Abs(local.X()) <= he.X() && math.Abs(local.Z()) <= he.Z()
}

// drawHUD writes the status line and the key hints.
func (g *Game) drawHUD(dst *core.Screen) {
	s := g.machine.State()

	status := fmt.Sprintf(" %s  %-7s  %s ", g.title, s.Phase, formatDuration(g.machine.Elapsed()))
	dst.DrawTextColored(0, 0, status, core.ColorWhite)

	best := "--"
	if g.hasBest {
		best = formatDuration(g.best)
	}
	info := fmt.Sprintf(" best %s  seed %s  blocks %d ", best, SeedKey(s.Seed), s.BlockCount)
	if x := dst.Width() - len(info); x > len(status) {
		dst.DrawTextColored(x, 0, info, core.ColorGray)
	}

	hint := " WASD/arrows roll  Space jump  R restart  P pause  Q quit"
	if s.Phase == state.Ready {
		hint = " Roll to start the clock  |" + hint
	}
	if g.Qualified() {
		hint += "  N next"
	}
	dst.DrawTextColored(0, dst.Height()-1, hint, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := len([]rune(title))
	if n := len([]rune(subtitle)); n > boxW {
		boxW = n
	}
	boxW += 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}

// formatDuration renders a run time as seconds with two decimals.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
