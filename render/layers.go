package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/powerup"
	"github.com/lixenwraith/neon-arena/vmath"
)

// Glyphs
const (
	glyphPaddle   = '█'
	glyphBall     = '●'
	glyphDecoy    = '○'
	glyphTrail    = '·'
	glyphAim      = '•'
	glyphGrid     = '·'
	glyphWallH    = '─'
	glyphWallV    = '│'
	glyphShieldH  = '═'
	glyphShieldV  = '║'
	glyphCorner   = '+'
	glyphLife     = '♥'
	glyphLifeLost = '✗'
)

var itemGlyphs = map[string]rune{
	powerup.KindPaddleSize.String():      'S',
	powerup.KindShield.String():          'H',
	powerup.KindDecoyBall.String():       'D',
	powerup.KindBallSpeed.String():       'V',
	powerup.KindGhostBall.String():       'G',
	powerup.KindMagnetize.String():       'M',
	powerup.KindWildBounce.String():      'W',
	powerup.KindControlScramble.String(): 'C',
}

const (
	gridStepX  = 8
	gridStepY  = 4
	aimDots    = 5
	aimSpacing = 14.0
)

// --- field ---

// FieldLayer draws the background grid and the four walls
type FieldLayer struct{}

func (FieldLayer) Render(f *Frame, buf *Buffer) {
	v := f.View
	x0, y0 := v.OffX+v.ShakeX, v.OffY+v.ShakeY
	x1, y1 := x0+v.Cols-1, y0+v.Rows-1

	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			buf.SetBg(x, y, RGBBackground, BlendReplace, 1)
			if (x-x0)%gridStepX == 0 && (y-y0)%gridStepY == 0 {
				buf.Set(x, y, glyphGrid, RGBGrid, BlendReplace, 1)
			}
		}
	}

	shielded := shieldedSides(f)
	wall := func(side core.Side) (core.RGB, rune, rune) {
		owner := side.Owner()
		if shielded[side] {
			return core.RGBShieldBlue, glyphShieldH, glyphShieldV
		}
		if !f.Snapshot.Paddles[owner].Alive {
			return RGBWallDead, glyphWallH, glyphWallV
		}
		return RGBWall.Blend(core.PlayerColor(owner), 0.5), glyphWallH, glyphWallV
	}

	c, _, r := wall(core.SideLeft)
	for y := y0; y <= y1; y++ {
		buf.Set(x0, y, r, c, BlendReplace, 1)
	}
	c, _, r = wall(core.SideRight)
	for y := y0; y <= y1; y++ {
		buf.Set(x1, y, r, c, BlendReplace, 1)
	}
	c, r, _ = wall(core.SideTop)
	for x := x0; x <= x1; x++ {
		buf.Set(x, y0, r, c, BlendReplace, 1)
	}
	c, r, _ = wall(core.SideBottom)
	for x := x0; x <= x1; x++ {
		buf.Set(x, y1, r, c, BlendReplace, 1)
	}
	for _, p := range [4][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		buf.Set(p[0], p[1], glyphCorner, RGBWall, BlendReplace, 1)
	}
}

func shieldedSides(f *Frame) [core.PlayerCount]bool {
	var out [core.PlayerCount]bool
	for _, e := range f.Snapshot.Effects {
		if e.Kind == powerup.KindShield.String() && e.Player.Valid() {
			out[core.SideOf(e.Player)] = true
		}
	}
	return out
}

// --- items ---

// ItemLayer draws field power-ups; warning items blink
type ItemLayer struct{}

func (ItemLayer) Render(f *Frame, buf *Buffer) {
	for _, it := range f.Snapshot.Items {
		if it.Flashing && f.Count/8%2 == 1 {
			continue
		}
		x, y := f.View.Cell(it.X, it.Y)
		glyph, ok := itemGlyphs[it.Kind]
		if !ok {
			glyph = '?'
		}
		buf.SetBg(x, y, it.Color.Scale(0.35), BlendAdd, 1)
		buf.Set(x, y, glyph, it.Color, BlendReplace, 1)
		if it.Glow > 0 {
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				buf.SetBg(x+d[0], y+d[1], it.Color.Scale(0.15), BlendAdd, 1)
			}
		}
	}
}

// --- trail ---

// TrailLayer draws fading ball trails
type TrailLayer struct{}

func (TrailLayer) Render(f *Frame, buf *Buffer) {
	drawTrail(f, buf, f.Snapshot.Ball)
	for _, d := range f.Snapshot.Decoys {
		drawTrail(f, buf, d)
	}
}

func drawTrail(f *Frame, buf *Buffer, b engine.BallView) {
	n := len(b.Trail)
	for i, p := range b.Trail {
		x, y := f.View.Cell(p.X, p.Y)
		alpha := 0.6 * float64(i+1) / float64(n) * b.Alpha
		buf.Set(x, y, glyphTrail, RGBBackground.Blend(b.Color, alpha), BlendReplace, 1)
	}
}

// --- entities ---

// EntityLayer draws paddles, the ball and decoys
type EntityLayer struct{}

func (EntityLayer) Render(f *Frame, buf *Buffer) {
	for _, p := range f.Snapshot.Paddles {
		if !p.Alive {
			continue
		}
		x0, y0, x1, y1 := f.View.RectCells(core.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H})
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				buf.Set(x, y, glyphPaddle, p.Color, BlendReplace, 1)
			}
		}
	}

	for _, d := range f.Snapshot.Decoys {
		drawBall(f, buf, d, glyphDecoy)
	}
	drawBall(f, buf, f.Snapshot.Ball, glyphBall)
}

func drawBall(f *Frame, buf *Buffer, b engine.BallView, glyph rune) {
	x, y := f.View.Cell(b.X, b.Y)
	if b.Glow > 0 {
		glow := b.Color.Scale(0.25 * b.Alpha)
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			buf.SetBg(x+d[0], y+d[1], glow, BlendAdd, 1)
		}
	}
	buf.Set(x, y, glyph, RGBBackground.Blend(b.Color, b.Alpha), BlendReplace, 1)
}

// --- aim ---

// AimLayer draws the launch direction while a player aims
type AimLayer struct{}

func (AimLayer) Render(f *Frame, buf *Buffer) {
	a := f.Snapshot.Aiming
	if f.Snapshot.Mode != core.ModeAiming || !a.Player.Valid() {
		return
	}
	color := core.PlayerColor(a.Player)
	origin := vmath.V2(f.Snapshot.Ball.X, f.Snapshot.Ball.Y)
	for i := 1; i <= aimDots; i++ {
		p := origin.Add(vmath.FromAngleDeg(a.Angle, aimSpacing*float64(i)))
		x, y := f.View.Cell(p.X, p.Y)
		fade := 1 - float64(i-1)/float64(aimDots)
		buf.Set(x, y, glyphAim, RGBBackground.Blend(color, fade), BlendReplace, 1)
	}
}

// --- particles ---

// ParticleLayer draws cosmetic sparks
type ParticleLayer struct{}

func (ParticleLayer) Render(f *Frame, buf *Buffer) {
	for _, p := range f.Effects.Live() {
		x, y := f.View.Cell(p.Pos.X, p.Pos.Y)
		if !f.View.Contains(x-f.View.ShakeX, y-f.View.ShakeY) {
			continue
		}
		fade := p.Fade()
		glyph := '.'
		switch {
		case fade > 0.6:
			glyph = '*'
		case fade > 0.3:
			glyph = '+'
		}
		buf.Set(x, y, glyph, RGBBackground.Blend(p.Color, fade), BlendReplace, 1)
	}
}

// --- hud ---

// HudLayer draws lives, active effects and the mode on the top row
type HudLayer struct{}

func (HudLayer) Render(f *Frame, buf *Buffer) {
	s := f.Snapshot
	width, _ := buf.Size()
	for x := 0; x < width; x++ {
		buf.SetBg(x, 0, RGBOverlayBg, BlendReplace, 1)
	}

	x := 1
	for id := core.PlayerID(0); id < core.PlayerCount; id++ {
		color := core.PlayerColor(id)
		label := fmt.Sprintf("P%d ", id+1)
		if s.Paddles[id].AI {
			label = fmt.Sprintf("P%d* ", id+1)
		}
		buf.Text(x, 0, label, color, true)
		x += len(label)
		if s.Lives[id] <= 0 {
			buf.Text(x, 0, string(glyphLifeLost), RGBWallDead, false)
			x++
		} else {
			hearts := strings.Repeat(string(glyphLife), s.Lives[id])
			buf.Text(x, 0, hearts, color, false)
			x += s.Lives[id]
		}
		x += 2
	}

	for _, e := range s.Effects {
		label := e.Kind
		if e.Player.Valid() {
			label = fmt.Sprintf("%s(P%d)", e.Kind, e.Player+1)
		}
		label = fmt.Sprintf("%s %ds ", label, (e.Remaining+constant.TickRate-1)/constant.TickRate)
		buf.Text(x, 0, label, RGBHud, false)
		x += len([]rune(label))
	}

	mode := s.Mode.String()
	if s.Mode == core.ModeAiming && s.Aiming.Player.Valid() {
		mode = fmt.Sprintf("P%d aim %.1fs", s.Aiming.Player+1, float64(s.Aiming.Timer)/constant.TickRate)
	}
	buf.Text(width-len([]rune(mode))-1, 0, mode, RGBHud, false)
}

// --- overlays ---

// OverlayLayer draws the menus and the result screen over the arena
type OverlayLayer struct{}

func (OverlayLayer) Render(f *Frame, buf *Buffer) {
	var lines []string
	s := f.Snapshot
	switch s.Mode {
	case core.ModeStartScreen:
		lines = []string{
			"N E O N   A R E N A",
			"",
			"Enter  start",
			"o      settings",
			"q      quit",
			"",
			"P1 w/s   P2 up/down   P3 j/l   P4 4/6",
			"space launch   p pause",
		}
	case core.ModeSettings:
		lines = append([]string{"SETTINGS", ""}, f.Settings...)
		lines = append(lines, "", "Esc  back")
	case core.ModePaused:
		lines = []string{"PAUSED", "", "p/Esc  resume", "Enter  restart", "m      menu"}
	case core.ModeGameOver:
		lines = []string{"GAME OVER", ""}
		if s.Winner != nil {
			lines = append(lines, s.Winner.Message)
		}
		lines = append(lines, "", "Enter  play again", "m      menu")
	default:
		return
	}

	width, height := buf.Size()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	bx := (width - boxW) / 2
	by := (height - boxH) / 2
	for y := by; y < by+boxH; y++ {
		for x := bx; x < bx+boxW; x++ {
			buf.SetWithBg(x, y, ' ', RGBForeground, RGBOverlayBg)
		}
	}

	title := core.RGBNeonCyan
	if s.Winner != nil && s.Winner.Player.Valid() {
		title = core.PlayerColor(s.Winner.Player)
	}
	for i, l := range lines {
		if i == 0 {
			buf.TextCentered(by+1, l, title, true)
			continue
		}
		buf.TextCentered(by+1+i, l, RGBForeground, false)
	}
}
