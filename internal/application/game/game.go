// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raincoat/internal/application/scene"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	// Live tuning; tuning is the latest config received and is handed to
	// every scene entered after it arrived.
	configs <-chan *config.PhysicsConfig
	tuning  *config.PhysicsConfig
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// WatchConfig forwards every config received on updates to the current
// scene, if it is tunable. A closed channel stops forwarding.
func (g *Game) WatchConfig(updates <-chan *config.PhysicsConfig) {
	g.configs = updates
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.pollConfig()

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		if g.tuning != nil {
			g.apply(g.tuning)
		}
		g.current.OnEnter()
	}

	return nil
}

func (g *Game) pollConfig() {
	if g.configs == nil {
		return
	}
	select {
	case cfg, ok := <-g.configs:
		if !ok {
			g.configs = nil
			return
		}
		g.tuning = cfg
		g.apply(cfg)
	default:
	}
}

func (g *Game) apply(cfg *config.PhysicsConfig) {
	if t, ok := g.current.(scene.Tunable); ok {
		t.SetConfig(cfg)
	}
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
