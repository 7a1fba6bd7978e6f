package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs/system"
	"github.com/milk9111/undercroft/fx"
	"github.com/milk9111/undercroft/mixer"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/session"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const statusFrames = 120

type gameOptions struct {
	Scene string
	Debug bool
	Seed  uint64
	Watch bool
	Mute  bool
}

type Game struct {
	session *session.Session
	mixer   *mixer.Mixer
	fx      *fx.Pool
	out     *audio.Player
	watcher *prefabs.Watcher

	paused  bool
	pauseUI *ebitenui.UI
	debug   bool
	quit    bool

	clipboardOK bool
	status      string
	statusLeft  int
}

func NewGame(opts gameOptions) (*Game, error) {
	spec, err := prefabs.LoadMixerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	mx, err := mixer.New(*spec)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	pool := fx.NewPool(rand.New(rand.NewPCG(seed, seed>>1)))

	sess, err := session.New(session.Options{
		Scene: opts.Scene,
		Sinks: sceneSinks{mixer: mx, fx: pool},
		Mixer: mx,
		Seed:  seed,
		Input: true,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		session: sess,
		mixer:   mx,
		fx:      pool,
		debug:   opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)

	if !opts.Mute {
		ctx := audio.NewContext(mx.SampleRate())
		out, err := ctx.NewPlayer(mx)
		if err != nil {
			return nil, fmt.Errorf("game: audio output: %w", err)
		}
		out.SetBufferSize(50 * time.Millisecond)
		out.Play()
		g.out = out
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.out != nil {
		_ = g.out.Close()
	}
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		if g.out != nil {
			g.out.Pause()
		}
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if g.out != nil {
		g.out.Play()
	}
}

func (g *Game) copyReport() {
	b, err := g.session.ReportYAML()
	if err != nil {
		g.flash(fmt.Sprintf("state report: %v", err))
		return
	}
	if !g.clipboardOK {
		log.Printf("game: state report\n%s", b)
		g.flash("clipboard unavailable, report logged")
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.flash("state copied to clipboard")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusLeft = statusFrames
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if g.statusLeft > 0 {
		g.statusLeft--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.watcher != nil {
		g.session.Reload(g.watcher.Drain())
		select {
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("game: prefab watcher: %v", err)
			}
		default:
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.session.Step(dt, nil)
	g.fx.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	view := newTopDown(g.session)
	view.drawScene(screen)
	g.fx.Draw(screen, view.project)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
	if g.statusLeft > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 8, common.BaseHeight-24)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) debugText() string {
	r := g.session.Report()
	s := fmt.Sprintf("FPS: %.1f  frame: %d  scene: %s  snapshot: %s\n", ebiten.ActualFPS(), r.Frame, r.Scene, r.Snapshot)
	if r.Player != nil {
		s += fmt.Sprintf("player: (%.2f, %.2f, %.2f) yaw %.0f  crouched %v  focus %s %.2f  surface %s\n",
			r.Player.Position[0], r.Player.Position[1], r.Player.Position[2], r.Player.Yaw,
			r.Player.Crouched, r.Player.Focus, r.Player.Distance, r.Player.Surface)
	}
	for _, it := range r.Interactables {
		s += fmt.Sprintf("%s: %s  armed %v\n", it.Name, it.State, it.Armed)
	}
	for _, w := range r.Water {
		s += fmt.Sprintf("%s: level %.2f %s\n", w.Name, w.Level, w.Mode)
	}
	if cut, ok := g.mixer.Float(system.FootstepCutoffParam); ok {
		s += fmt.Sprintf("footstepCutoff: %.0f Hz  particles: %d\n", cut, g.fx.Live())
	}
	return s
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
