// Package desktop renders the dashboard in a native window using Ebiten.
// Sampling happens on the event loop's own update ticks; drawing only
// reads the last built view.
package desktop

import (
	"context"
	"sync"
	"time"

	"github.com/MatBureau/sysmonitor/internal/system"
	"github.com/MatBureau/sysmonitor/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
)

// RefreshInterval is fixed; the desktop window is not configurable.
const RefreshInterval = 1000 * time.Millisecond

const (
	windowWidth  = 400
	windowHeight = 400
)

type Sampler interface {
	Sample(ctx context.Context) (system.Snapshot, error)
}

// ErrorHandler receives failed ticks. The window keeps the previous
// readings and tries again on the next tick.
type ErrorHandler func(err error)

type Game struct {
	sampler  Sampler
	onError  ErrorHandler
	title    string
	subtitle string
	now      func() time.Time

	mu         sync.RWMutex
	ctx        context.Context
	lastUpdate time.Time
	dash       *view.Dashboard

	fontsOnce sync.Once
	fonts     *fonts
}

func NewGame(sampler Sampler, onError ErrorHandler) *Game {
	return &Game{
		sampler: sampler,
		onError: onError,
		title:   "System Dashboard",
		now:     time.Now,
		ctx:     context.Background(),
	}
}

// SetSubtitle sets the small line under the header, e.g. the hostname.
func (g *Game) SetSubtitle(s string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subtitle = s
}

// SetContext ends the event loop when ctx is cancelled.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// Dashboard returns the view currently on screen, nil before the first
// successful tick.
func (g *Game) Dashboard() *view.Dashboard {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.dash
}

// Update implements ebiten.Game. It runs every frame; a sample is taken at
// most once per RefreshInterval.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	now := g.now()
	if !g.lastUpdate.IsZero() && now.Sub(g.lastUpdate) < RefreshInterval {
		return nil
	}
	g.lastUpdate = now

	snap, err := g.sampler.Sample(g.ctx)
	if err != nil {
		if g.onError != nil {
			g.onError(err)
		}
		return nil
	}
	d := view.Build(snap)
	g.dash = &d
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.fontsOnce.Do(func() { g.fonts = loadFonts() })

	g.mu.RLock()
	defer g.mu.RUnlock()

	screen.Fill(colorBackground)
	drawHeader(screen, g.fonts, g.title, g.subtitle)

	meters := placeholderMeters()
	if g.dash != nil {
		meters = g.dash.Meters()
	}
	for i, m := range meters {
		drawCard(screen, g.fonts, m, cardTop+float32(i)*cardStride)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

// Run opens the window and blocks until it is closed or the context ends.
func (g *Game) Run() error {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func placeholderMeters() []view.Meter {
	return view.Build(system.Snapshot{}).Meters()
}
