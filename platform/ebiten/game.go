// Package ebiten runs an app.App inside an Ebiten window. Keyboard and mouse
// events are fed into input.State, the window size into render.WindowSize, and
// submitted frames are drawn as wireframes.
package ebiten

import (
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/input"
	"github.com/plus3/carnot/render"
	"go.uber.org/zap"
)

var mouseButtons = [...]struct {
	ebiten ebiten.MouseButton
	input  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
}

// Game implements ebiten.Game around an App. Each Ebiten tick polls input and
// steps one frame; Draw paints the last frame the render system submitted.
type Game struct {
	app      *app.App
	renderer *WireframeRenderer
	keys     []ebiten.Key
	tick     time.Duration
	width    int
	height   int
}

// NewGame installs the input and render plugins on a, with a wireframe renderer,
// and configures the window from the app config.
func NewGame(a *app.App) *Game {
	g := &Game{
		app:      a,
		renderer: &WireframeRenderer{},
	}
	a.AddPlugin(input.Plugin{}).AddPlugin(render.Plugin{Renderer: g.renderer})

	cfg := a.Config().App
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	tps := ticksPerSecond(cfg.TickRate)
	ebiten.SetTPS(tps)
	g.tick = time.Second / time.Duration(tps)
	return g
}

// ticksPerSecond converts a tick interval to an Ebiten TPS, at least 1. A
// non-positive interval selects ebiten.DefaultTPS.
func ticksPerSecond(tick time.Duration) int {
	if tick <= 0 {
		return ebiten.DefaultTPS
	}
	return max(1, int(time.Second/tick))
}

// Run opens the window and blocks until it is closed, Escape is pressed, the
// frame limit is reached or a system fails.
func (g *Game) Run() error {
	g.app.Logger().Info("window opening", zap.String("title", g.app.Config().App.Title))
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollInput()

	if err := g.app.Step(g.tick); err != nil {
		return err
	}
	if g.app.Done() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game. The drawable size follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		size, ok := ecs.GetResourceMut[render.WindowSize](g.app.World())
		if ok {
			*size.Get() = render.WindowSize{Width: outsideWidth, Height: outsideHeight}
			size.Release()
		}
	}
	return outsideWidth, outsideHeight
}

func (g *Game) pollInput() {
	state, ok := ecs.GetResourceMut[input.State](g.app.World())
	if !ok {
		return
	}
	defer state.Release()
	in := state.Get()

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		in.PressKey(keyName(k))
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		in.ReleaseKey(keyName(k))
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			in.PressButton(b.input)
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			in.ReleaseButton(b.input)
		}
	}

	x, y := ebiten.CursorPosition()
	in.MoveCursor(mgl64.Vec2{float64(x), float64(y)})

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		in.Scroll(mgl64.Vec2{dx, dy})
	}
}

// keyName maps an Ebiten key to an input.Key. Left and right modifier keys are
// folded together.
func keyName(k ebiten.Key) input.Key {
	name := k.String()
	for _, modifier := range []string{"Shift", "Control", "Alt", "Meta"} {
		if strings.HasPrefix(name, modifier) {
			return input.Key(modifier)
		}
	}
	return input.Key(name)
}
