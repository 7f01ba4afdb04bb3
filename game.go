package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/witchwood/ai"
	"github.com/milk9111/witchwood/common"
	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/prefabs"
	"github.com/milk9111/witchwood/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 860
	hudHeight  = 60
	coneSteps  = 16
)

// Game renders a running sim top-down. WASD steers the player, E works the
// cauldron, C pockets a cookie from thin air and R restarts a finished run.
type Game struct {
	sim       *sim.Sim
	witchName string
	seed      int64
	scale     float64
	face      ebtext.Face
	debug     bool

	changes <-chan string
	log     *logrus.Entry
}

func NewGame(s *sim.Sim, witchName string, seed int64) *Game {
	g := &Game{
		sim:       s,
		witchName: witchName,
		seed:      seed,
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
		log:       logger.For("viewer"),
	}
	b := s.Scene.Bounds
	g.scale = math.Min(baseWidth/b.Width, (baseHeight-hudHeight)/b.Height)
	return g
}

func (g *Game) watch(w *prefabs.Watcher) {
	g.changes = w.Events
}

func (g *Game) Update() error {
	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if g.sim.Outcome() != sim.Running {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restart()
		}
		return nil
	}

	var dir common.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	g.sim.SetInput(dir)
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.sim.Interact()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.Collect(1)
	}

	g.sim.Step(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) restart() {
	g.seed++
	s, err := sim.New(g.sim.Scene, g.currentWitch(), g.currentPlayer(), sim.Options{Seed: g.seed})
	if err != nil {
		g.log.WithError(err).Error("restart failed")
		return
	}
	g.sim = s
}

func (g *Game) currentWitch() *prefabs.WitchSpec {
	spec, err := prefabs.LoadWitchSpec(g.witchName)
	if err != nil {
		def := prefabs.DefaultWitchSpec()
		return &def
	}
	return spec
}

func (g *Game) currentPlayer() *prefabs.PlayerSpec {
	spec, err := prefabs.LoadPlayerSpec("player.yaml")
	if err != nil {
		def := prefabs.DefaultPlayerSpec()
		return &def
	}
	return spec
}

func (g *Game) applyChanges() {
	for {
		select {
		case path, ok := <-g.changes:
			if !ok {
				g.changes = nil
				return
			}
			var err error
			switch {
			case prefabs.IsScript(path):
				var src []byte
				if src, err = os.ReadFile(path); err == nil {
					err = g.sim.ReloadScript(filepath.Base(path), src)
				}
			case filepath.Base(path) == filepath.Base(g.witchName):
				var spec *prefabs.WitchSpec
				if spec, err = prefabs.LoadWitchSpec(g.witchName); err == nil {
					err = g.sim.ReloadWitch(spec)
				}
			}
			if err != nil {
				g.log.WithError(err).WithField("path", path).Warn("reload failed")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	snap := g.sim.Snapshot()
	scene := g.sim.Scene

	g.fillRect(screen, scene.Bounds, colornames.Darkolivegreen)
	for _, r := range scene.Exits {
		g.fillRect(screen, r, colornames.Seagreen)
	}
	for _, r := range scene.Obstacles {
		g.fillRect(screen, r, colornames.Dimgray)
	}
	for _, r := range scene.Gates {
		if snap.GatesOpen {
			g.strokeRect(screen, r, colornames.Gold)
		} else {
			g.fillRect(screen, r, colornames.Saddlebrown)
		}
	}
	if c := scene.Cauldron; c != nil {
		g.circle(screen, c.Position, c.Radius, colornames.Mediumpurple, false)
		g.circle(screen, c.Position, 0.6, colornames.Indigo, true)
	}
	for _, p := range snap.Pickups {
		g.circle(screen, p, scene.CookieRadius, colornames.Burlywood, true)
	}

	g.drawWitch(screen, snap.Witch)

	g.circle(screen, snap.Player.Position, 0.4, colornames.Lightskyblue, true)
	g.line(screen, snap.Player.Position, snap.Player.Position.Add(snap.Player.Forward.Scale(0.8)), colornames.White)

	g.drawHUD(screen, snap)
}

func (g *Game) drawWitch(screen *ebiten.Image, wv sim.WitchView) {
	vision := g.sim.Controller().Vision()
	coneColor := colornames.Khaki
	if wv.Brain.Perceived {
		coneColor = colornames.Orangered
	}
	cone := color.NRGBA{R: coneColor.R, G: coneColor.G, B: coneColor.B, A: 90}
	left := wv.Forward.Rotate(-vision.HalfAngle)
	prev := wv.Position.Add(left.Scale(vision.Range))
	g.line(screen, wv.Position, prev, cone)
	for i := 1; i <= coneSteps; i++ {
		deg := -vision.HalfAngle + 2*vision.HalfAngle*float64(i)/coneSteps
		next := wv.Position.Add(wv.Forward.Rotate(deg).Scale(vision.Range))
		g.line(screen, prev, next, cone)
		prev = next
	}
	g.line(screen, wv.Position, prev, cone)

	if len(wv.Path) > 0 {
		from := wv.Position
		for _, p := range wv.Path {
			g.line(screen, from, p, colornames.Lightpink)
			from = p
		}
	}
	if last, ok := g.sim.Controller().LastKnown(); ok && wv.Brain.State == ai.StatePursue {
		g.circle(screen, last, 0.3, colornames.Red, false)
	}

	body := colornames.Darkmagenta
	if wv.Paralyzed {
		body = colornames.Slateblue
	}
	g.circle(screen, wv.Position, 0.5, body, true)
	g.line(screen, wv.Position, wv.Position.Add(wv.Forward.Scale(1)), colornames.White)

	x, y := g.toScreen(wv.Position)
	g.label(screen, wv.Brain.State.String(), x-20, y-28)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	top := float32(baseHeight - hudHeight)
	vector.FillRect(screen, 0, top, baseWidth, hudHeight, color.NRGBA{A: 200}, false)

	status := fmt.Sprintf("t=%.1fs  hp %d/%d  cookies %d  witch %.0f/%.0f  aggression %.2f  speeds %.2f/%.2f",
		snap.Time, snap.Player.Health, snap.Player.MaxHealth, snap.Player.Cookies,
		snap.Witch.Health, snap.Witch.MaxHealth, snap.Witch.Brain.Aggression, snap.Witch.Brain.Walk, snap.Witch.Brain.Run)
	if snap.Witch.Paralyzed {
		status += fmt.Sprintf("  paralyzed %.1fs", snap.Witch.ParalysisRemaining)
	}
	g.label(screen, status, 10, float64(top)+10)

	hint := "WASD move  E cauldron  C cookie  F1 debug"
	if snap.Outcome != sim.Running {
		hint = fmt.Sprintf("%s. R to restart", snap.Outcome)
	}
	g.label(screen, hint, 10, float64(top)+32)

	if g.debug {
		g.label(screen, fmt.Sprintf("memory %.2f  next hit %.2f  hits %d  TPS %.0f",
			snap.Witch.Brain.Memory, snap.Witch.Brain.NextDamage, snap.Witch.Brain.Hits, ebiten.ActualTPS()), 10, 10)
	}
}

func (g *Game) toScreen(p common.Vec2) (float64, float64) {
	b := g.sim.Scene.Bounds
	return (p.X - b.X) * g.scale, (p.Y - b.Y) * g.scale
}

func (g *Game) fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	x, y := g.toScreen(common.V(r.X, r.Y))
	vector.FillRect(screen, float32(x), float32(y), float32(r.Width*g.scale), float32(r.Height*g.scale), clr, false)
}

func (g *Game) strokeRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	x, y := g.toScreen(common.V(r.X, r.Y))
	vector.StrokeRect(screen, float32(x), float32(y), float32(r.Width*g.scale), float32(r.Height*g.scale), 2, clr, false)
}

func (g *Game) circle(screen *ebiten.Image, p common.Vec2, radius float64, clr color.Color, fill bool) {
	x, y := g.toScreen(p)
	if fill {
		vector.FillCircle(screen, float32(x), float32(y), float32(radius*g.scale), clr, true)
		return
	}
	vector.StrokeCircle(screen, float32(x), float32(y), float32(radius*g.scale), 1.5, clr, true)
}

func (g *Game) line(screen *ebiten.Image, a, b common.Vec2, clr color.Color) {
	x1, y1 := g.toScreen(a)
	x2, y2 := g.toScreen(b)
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1.5, clr, true)
}

func (g *Game) label(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
