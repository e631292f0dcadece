// Package main provides the interactive client: one character driven by
// keyboard, mouse, or gamepad, with its state printed to the window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/app"
	"github.com/cory-johannsen/shooter/internal/config"
	"github.com/cory-johannsen/shooter/internal/game/input/device"
	"github.com/cory-johannsen/shooter/internal/scripting"
)

const (
	screenWidth  = 640
	screenHeight = 360
)

// game adapts an App to ebiten.Game.
type game struct {
	app    *app.App
	poller *device.Poller
	dt     time.Duration
	locked bool
}

func (g *game) Update() error {
	for _, ev := range g.poller.Poll() {
		g.app.Router.Dispatch(ev)
	}
	g.app.Step(g.dt)

	if locked := g.app.Character.CursorLocked(); locked != g.locked {
		g.locked = locked
		g.applyCursorMode()
	}
	return nil
}

func (g *game) applyCursorMode() {
	if g.locked {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (g *game) Draw(screen *ebiten.Image) {
	c := g.app.Character
	s := c.State()

	var b strings.Builder
	if w := c.EquippedWeapon(); w != nil {
		fmt.Fprintf(&b, "weapon %d: %s  %d/%d", c.EquippedIndex(), w.ID(), w.Ammunition(), w.Capacity())
		if w.IsAutomatic() {
			b.WriteString("  [auto]")
		}
		if sc := c.EquippedScope(); sc != nil {
			fmt.Fprintf(&b, "  scope %s", sc.ID)
		}
		b.WriteByte('\n')
	} else {
		b.WriteString("weapon: none\n")
	}
	fmt.Fprintf(&b, "aiming %t  running %t  jumping %t\n", s.Aiming, s.Running, s.Jumping)
	fmt.Fprintf(&b, "reloading %t  inspecting %t  holstering %t  holstered %t\n",
		s.Reloading, s.Inspecting, s.Holstering, s.Holstered)
	fmt.Fprintf(&b, "sequence %s  crosshair %t  cursor locked %t\n",
		c.SequencePhase(), c.CrosshairVisible(), c.CursorLocked())
	if c.TutorialVisible() {
		b.WriteString("\nLMB fire  RMB aim  Shift run  Space jump\n")
		b.WriteString("R reload  T inspect  Y holster  Q/wheel switch  Esc cursor\n")
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	a, cleanup, err := app.Initialize(&cfg)
	if err != nil {
		log.Fatalf("initializing app: %v", err)
	}
	defer cleanup()
	logger := a.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if a.Scripts != nil && cfg.Content.WatchScripts {
		reloader, err := scripting.NewReloader(a.Scripts, logger.Named("scripting"))
		if err != nil {
			logger.Fatal("watching scripts", zap.Error(err))
		}
		defer reloader.Stop()
		go func() {
			if err := reloader.Start(ctx); err != nil {
				logger.Error("script reloader stopped", zap.Error(err))
			}
		}()
	}

	g := &game{
		app:    a,
		poller: device.NewPoller(),
		dt:     cfg.Tick.Interval(),
		locked: a.Character.CursorLocked(),
	}
	g.applyCursorMode()

	ebiten.SetTPS(cfg.Tick.Rate)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("shooter")

	logger.Info("starting client",
		zap.String("character", string(a.ID)),
		zap.Int("weapons", a.Inventory.Len()),
		zap.Int("tick_rate", cfg.Tick.Rate),
	)
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("client exited", zap.Error(err))
	}
}
