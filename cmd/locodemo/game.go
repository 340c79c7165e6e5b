package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/ecs/system"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/obj"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	zoom       = 3.0
)

var stateColors = map[locomotion.StateID]color.Color{
	locomotion.StateIdle: colornames.Lightgrey,
	locomotion.StateWalk: colornames.Mediumseagreen,
	locomotion.StateRun:  colornames.Orange,
	locomotion.StateJump: colornames.Deepskyblue,
	locomotion.StateFall: colornames.Mediumpurple,
}

type Game struct {
	frames int
	debug  bool

	log    *logrus.Logger
	cfg    locomotion.Config
	level  *obj.Level
	input  *obj.KeyboardInput
	camera *obj.Camera
	tuning <-chan locomotion.Config

	world   *ecs.World
	sched   *ecs.Scheduler
	rebuild bool
	arena   obj.Arena
	body    obj.CharacterBody
	player  ecs.Entity
}

func NewGame(cfg locomotion.Config, level *obj.Level, tuning <-chan locomotion.Config, log *logrus.Logger) (*Game, error) {
	g := &Game{
		log:    log,
		cfg:    cfg,
		level:  level,
		input:  obj.NewKeyboardInput(),
		camera: obj.NewCamera(baseWidth, baseHeight, zoom, level),
		tuning: tuning,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	g.camera.SnapTo(g.focus())
	return g, nil
}

// reset rebuilds the world around a fresh character at the spawn point.
func (g *Game) reset() error {
	arena := obj.NewArena(g.level, g.cfg.Variant)
	body := arena.AddCharacter(g.level.Spawn(), obj.DefaultBodySize)
	ctrl, err := locomotion.NewController(g.cfg, g.input, body, locomotion.WithLogger(g.log))
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	player, err := system.SpawnCharacter(world, "player", ctrl)
	if err != nil {
		return err
	}

	sched := ecs.NewScheduler(g.cfg.FixedTimestep,
		system.NewLocomotionSystem(),
		system.NewStatsSystem(g.log),
	)
	if g.tuning != nil {
		// The tuning system keeps the demo's copy of the config current so a
		// reset or variant switch starts from the reloaded values.
		sched.Add(&configTracker{TuningSystem: system.NewTuningSystem(g.tuning, g.log), game: g})
	}
	sched.AddFixed(system.NewFixedLocomotionSystem())
	sched.AddFixed(system.NewArenaSystem(arena))

	g.world, g.sched, g.arena, g.body, g.player = world, sched, arena, body, player
	return nil
}

// configTracker wraps the tuning system and mirrors the applied config.
type configTracker struct {
	*system.TuningSystem
	game *Game
}

// A reload that changes the variant or fixed step schedules a rebuild.
func (t *configTracker) Update(w *ecs.World, dt float64) {
	before := t.Applied()
	t.TuningSystem.Update(w, dt)
	if t.Applied() == before {
		return
	}
	if latest, ok := t.Latest(); ok && !latest.SameHost(t.game.cfg) {
		t.game.cfg = latest
		t.game.rebuild = true
		return
	}
	if c, ok := ecs.Get(w, t.game.player, component.CharacterComponent.Kind()); ok {
		t.game.cfg = c.Controller.Config()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.body.Teleport(g.level.Spawn())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if g.cfg.Variant == locomotion.VariantRigidbody {
			g.cfg.Variant = locomotion.VariantCharacterController
		} else {
			g.cfg.Variant = locomotion.VariantRigidbody
		}
		if err := g.reset(); err != nil {
			return err
		}
		g.log.WithField("variant", g.cfg.Variant.String()).Info("locodemo: switched variant")
	}

	g.sched.Update(g.world, 1.0/float64(ebiten.TPS()))
	if g.rebuild {
		g.rebuild = false
		if err := g.reset(); err != nil {
			return err
		}
		g.log.WithFields(logrus.Fields{
			"variant":        g.cfg.Variant.String(),
			"fixed_timestep": g.cfg.FixedTimestep,
		}).Info("locodemo: rebuilt for reloaded host settings")
	}
	g.camera.Update(g.focus())
	return nil
}

// focus is the body's center in level pixels.
func (g *Game) focus() (float64, float64) {
	b := g.body.Bounds()
	return b.X + b.Width/2, b.Y + b.Height/2
}

func (g *Game) fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	x, y := g.camera.ToScreen(r.X, r.Y)
	z := g.camera.Zoom()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.Width*z), float32(r.Height*z), clr, false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, r := range g.level.Solids() {
		g.fillRect(screen, r, colornames.Slategray)
	}

	c, _ := ecs.Get(g.world, g.player, component.CharacterComponent.Kind())
	b := g.body.Bounds()
	g.fillRect(screen, b, stateColors[c.Controller.State()])

	// Facing arrow from the body's center; depth shows as a shorter arrow.
	fwd := locomotion.Forward(g.body.Facing())
	cx, cy := g.camera.ToScreen(g.focus())
	length := b.Width * g.camera.Zoom()
	vector.StrokeLine(screen,
		float32(cx), float32(cy),
		float32(cx+fwd.X()*length), float32(cy-fwd.Z()*length*0.25),
		3, colornames.White, true)

	if g.debug {
		g.arena.DebugDraw(screen, g.camera)
	}

	g.drawHUD(screen, c)
}

func (g *Game) drawHUD(screen *ebiten.Image, c *component.Character) {
	ctx := c.Controller.Context()
	var lines []string
	lines = append(lines, fmt.Sprintf("FPS: %.1f  variant: %s  (V switch, R respawn, F1 debug)", ebiten.ActualFPS(), g.cfg.Variant))
	lines = append(lines, fmt.Sprintf("state: %s  grounded: %v  vy: %.2f  speed: %.1f",
		c.Controller.State(), ctx.Grounded(), ctx.VerticalVelocity(), ctx.Speed()))
	if a, ok := ecs.Get(g.world, g.player, component.AnimationComponent.Kind()); ok {
		lines = append(lines, "params: "+a.Params.String())
	}
	if st, ok := ecs.Get(g.world, g.player, component.StatsComponent.Kind()); ok {
		lines = append(lines, fmt.Sprintf("jumps: %d  peak: %.2f m  airtime: %.2f s",
			st.Jumps, st.PeakHeight, st.LastAirtime))
	}
	p := g.body.Position()
	lines = append(lines, fmt.Sprintf("pos: (%.2f, %.2f, %.2f)  g: %.2f  v0: %.2f",
		p.X(), p.Y(), p.Z(), ctx.Gravity(), ctx.InitialJumpVelocity()))
	if g.cfg.Variant == locomotion.VariantRigidbody {
		lines = append(lines, fmt.Sprintf("fixed: %d steps  alpha: %.2f", g.sched.FixedRuns(), g.sched.Alpha()))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
